// Package cmd implements console commands
package cmd

import (
	"os"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

// RootCommand creates root command in command tree
func RootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "repository metadata audit tool",
		Long: `
repoaudit checks a binary package repository against the build recipes it
was produced from. For every package in the repository database it
re-derives the authoritative metadata from the package's recipe and
reports every attribute that drifted: names, versions, dependencies,
licenses and the rest of the audited vocabulary.

repoaudit only detects and counts discrepancies; it never modifies the
repository or the recipes.`,
		Flag: *flag.NewFlagSet("repoaudit", flag.ExitOnError),
		Subcommands: []*commander.Command{
			makeCmdAudit(),
			makeCmdConfig(),
			makeCmdVersion(),
		},
	}

	cmd.Flag.String("config", "", "location of configuration file (default locations are /etc/repoaudit.conf, ~/.repoaudit.conf)")
	cmd.Flag.String("db", "", "location of the repository database (path or http(s) url)")
	cmd.Flag.String("recipe-root", "", "directory the build recipe tree lives under")
	cmd.Flag.String("repository", "", "repository name")
	cmd.Flag.Int("threads", 0, "number of audit workers")
	cmd.Flag.String("log-level", "", "log level (debug, info, warn, error)")
	cmd.Flag.String("log-format", "", "log format (default, json)")

	return cmd
}
