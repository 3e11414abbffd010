package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/repoaudit-dev/repoaudit/repoaudit"
)

func versionRun(cmd *commander.Command, args []string) error {
	fmt.Printf("repoaudit version: %s\n", repoaudit.Version)
	return nil
}

func makeCmdVersion() *commander.Command {
	return &commander.Command{
		Run:       versionRun,
		UsageLine: "version",
		Short:     "display version",
		Long: `
Shows repoaudit version.

Example:

  $ repoaudit version
`,
		Flag: *flag.NewFlagSet("repoaudit-version", flag.ExitOnError),
	}
}
