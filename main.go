package main

import (
	"os"

	"github.com/repoaudit-dev/repoaudit/cmd"
	"github.com/repoaudit-dev/repoaudit/repoaudit"
)

// Version variable, filled in at link time
var Version string

func main() {
	if Version == "" {
		Version = "unknown"
	}

	repoaudit.Version = Version

	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
