package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

func configShow(cmd *commander.Command, args []string) error {
	config := context.Config()

	prettyJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to dump the config file: %s", err)
	}
	fmt.Println(string(prettyJSON))

	return nil
}

func makeCmdConfigShow() *commander.Command {
	return &commander.Command{
		Run:       configShow,
		UsageLine: "show",
		Short:     "show current configuration",
		Long: `
Command show displays the current configuration.

Example:

  $ repoaudit config show
`,
		Flag: *flag.NewFlagSet("repoaudit-config-show", flag.ExitOnError),
	}
}

func makeCmdConfig() *commander.Command {
	return &commander.Command{
		UsageLine: "config",
		Short:     "manage config",
		Subcommands: []*commander.Command{
			makeCmdConfigShow(),
		},
		Flag: *flag.NewFlagSet("repoaudit-config", flag.ExitOnError),
	}
}
