package cmd

import (
	"fmt"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/lakshaymaurya-felt/devsweep/internal/purge"
	"github.com/lakshaymaurya-felt/devsweep/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var purgeFlags struct {
	root    string
	apply   bool
	trash   bool
	listAll bool
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove project build and dependency directories",
	Long: `Scan --root for regenerable directories (node_modules, target, .venv,
vendor/bundle and similar) and report their sizes. With --apply, and after
typing "delete", every match still inside the root is removed.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	f := purgeCmd.Flags()
	f.StringVar(&purgeFlags.root, "root", "", "Workspace directory to scan (required)")
	f.BoolVar(&purgeFlags.apply, "apply", false, "Delete the matches after confirmation")
	f.BoolVar(&purgeFlags.trash, "trash", false, "Move matches to the trash instead of deleting")
	f.BoolVar(&purgeFlags.listAll, "list-all", false, "List every match, not just the largest")
	_ = purgeCmd.MarkFlagRequired("root")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	paths := config.DefaultPaths()

	root, err := purge.ValidateRoot(purgeFlags.root, paths.UnsafeRoots())
	if err != nil {
		return err
	}

	lock, err := core.AcquireLock("purge")
	if err != nil {
		return err
	}
	defer lock.Release()

	m := purge.NewMatcher(fileConfig.Purge.Names, fileConfig.Purge.Suffixes)
	matches, err := m.Scan(cmd.Context(), root)
	if err != nil {
		return err
	}
	logrus.WithField("path", root).Infof("purge scan found %d matches", len(matches))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, purge.Report(root, matches, purgeFlags.listAll))
	if len(matches) == 0 {
		return nil
	}
	if !purgeFlags.apply {
		if purgeFlags.trash {
			logrus.Info("--trash has no effect without --apply")
		}
		fmt.Fprintln(out, ui.DimStyle().Render("  Dry run. Re-run with --apply to delete."))
		return nil
	}

	var deleter core.Deleter = core.RemoveDeleter{}
	if purgeFlags.trash {
		td, err := core.NewTrashDeleter(paths.Home)
		if err != nil {
			return err
		}
		deleter = td
	}

	p := &purge.Purger{Root: root, Deleter: deleter, Confirm: ui.NewPrompter()}
	res, err := p.Apply(matches)
	fmt.Fprintf(out, "  %s %d removed (%s), %d skipped, %d failed\n",
		ui.IconCheck, len(res.Deleted), ui.FormatSize(res.FreedKB()*1024), len(res.Skipped), len(res.Failed))
	return err
}
