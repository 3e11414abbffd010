package cmd

import (
	gocontext "context"
	"fmt"
	"os"
	"sort"

	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/repoaudit-dev/repoaudit/audit"
	"github.com/repoaudit-dev/repoaudit/pacman"
	"github.com/repoaudit-dev/repoaudit/pgp"
	"github.com/repoaudit-dev/repoaudit/utils"
)

func auditRun(cmd *commander.Command, args []string) error {
	config := context.Config()
	progress := context.Progress()

	if err := utils.DirIsAccessible(config.RecipeRoot); err != nil {
		return err
	}

	databasePath := config.DatabasePath
	if utils.IsRemote(databasePath) {
		tempdir, err := os.MkdirTemp("", "repoaudit")
		if err != nil {
			return err
		}
		defer func() {
			_ = os.RemoveAll(tempdir)
		}()

		progress.Printf("Fetching %s...\n", databasePath)
		databasePath, err = utils.FetchDatabase(gocontext.TODO(), databasePath, config.DownloadLimit, tempdir)
		if err != nil {
			return err
		}
	}

	if !config.GpgDisableVerify && config.GpgKeyring != "" {
		if err := pgp.VerifyDatabase(config.GpgKeyring, databasePath); err != nil {
			return err
		}
	}

	snapshot, err := pacman.LoadDatabase(databasePath)
	if err != nil {
		return err
	}

	source := &audit.SrcinfoSource{
		Command:    config.SrcinfoCommand,
		Repository: config.Repository,
		RecipeRoot: config.RecipeRoot,
	}

	names := args
	if len(names) == 0 {
		if cmd.Flag.Lookup("from-recipes").Value.Get().(bool) {
			names, err = source.CollectPackages()
			if err != nil {
				return err
			}
		} else {
			for name := range snapshot {
				names = append(names, name)
			}
			sort.Strings(names)
		}
	}

	// recipe existence filter: packages without a readable build recipe
	// are not audited and not counted
	audited := names[:0]
	for _, name := range names {
		if source.HasRecipe(name) {
			audited = append(audited, name)
		}
	}
	if len(audited) == 0 {
		return fmt.Errorf("no packages with readable build recipes under %s", config.RecipeRoot)
	}

	auditor := &audit.Auditor{Snapshot: snapshot, Source: source}
	runner := audit.NewRunner(config.Threads, progress)

	progress.Printf("Auditing %d packages...\n", len(audited))
	progress.InitBar(int64(len(audited)))

	results := runner.Run(gocontext.TODO(), audited, auditor.AuditPackage)

	progress.ShutdownBar()

	for _, result := range results {
		if result.Err != nil {
			progress.ColoredPrintf("@y[!]@| @!unable to audit %s: %s@|", result.Package, result.Err)
			continue
		}
		for _, diff := range result.Diffs {
			progress.Printf("%s\n", diff)
		}
	}

	summary, err := audit.Summarize(results)
	if err != nil {
		return err
	}

	progress.Printf("\n%s", summary)

	return nil
}

func makeCmdAudit() *commander.Command {
	cmd := &commander.Command{
		Run:       auditRun,
		UsageLine: "audit [<package>...]",
		Short:     "audit repository against build recipes",
		Long: `
Audit loads the repository database, re-derives the authoritative metadata
for each package from its build recipe and reports every attribute
mismatch together with aggregate statistics. Without arguments every
package in the database that has a readable build recipe is audited.

Example:

  $ repoaudit audit zlib linux-headers
`,
		Flag: *flag.NewFlagSet("repoaudit-audit", flag.ExitOnError),
	}

	cmd.Flag.Bool("from-recipes", false, "take the package list from the recipe tree instead of the database")

	return cmd
}
