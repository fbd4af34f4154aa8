package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/lakshaymaurya-felt/devsweep/internal/clean"
	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/lakshaymaurya-felt/devsweep/internal/docker"
	"github.com/lakshaymaurya-felt/devsweep/internal/executil"
	"github.com/lakshaymaurya-felt/devsweep/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cleanFlagValues struct {
	profile     string
	dryRun      bool
	apply       bool
	yes         bool
	interactive bool
	strict      bool
	noStrict    bool
	volumes     bool
	global      bool
	only        []string
	skip        []string
}

var cleanFlags cleanFlagValues

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean package-manager and build caches",
	Long: `Run the cache cleanup tasks selected by --profile, --only and --skip.

Tasks: docker, go, node, python, ruby, brew (safe); xcode, ios_sim, gradle
(dev); cargo (aggressive). Each task is estimated first; with --apply the
free space on the home volume is sampled around every task.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVar(&cleanFlags.profile, "profile", "safe", "Task profile: safe, dev or aggressive")
	f.BoolVar(&cleanFlags.dryRun, "dry-run", false, "Estimate and log operations without running them (default)")
	f.BoolVar(&cleanFlags.apply, "apply", false, "Run the cleanup operations")
	f.BoolVar(&cleanFlags.yes, "yes", false, "Assume yes for every confirmation")
	f.BoolVar(&cleanFlags.interactive, "interactive", false, "Ask before risky operations")
	f.BoolVar(&cleanFlags.strict, "strict", false, "Stop after the first failing task (default)")
	f.BoolVar(&cleanFlags.noStrict, "no-strict", false, "Keep going after a failing task")
	f.BoolVar(&cleanFlags.volumes, "include-volumes", false, "Also prune unused docker volumes")
	f.BoolVar(&cleanFlags.global, "include-global-caches", false, "Also clean module and registry caches")
	f.StringSliceVar(&cleanFlags.only, "only", nil, "Run only these tasks (comma separated)")
	f.StringSliceVar(&cleanFlags.skip, "skip", nil, "Skip these tasks (comma separated)")

	cleanCmd.MarkFlagsMutuallyExclusive("dry-run", "apply")
	cleanCmd.MarkFlagsMutuallyExclusive("strict", "no-strict")
}

// cleanOptions builds the frozen run configuration: defaults, then the
// defaults file, then flags that were set explicitly.
func cleanOptions(cmd *cobra.Command) (config.Options, error) {
	changed := cmd.Flags().Changed
	o := config.DefaultOptions()
	fileConfig.Apply(&o, changed)

	if changed("profile") {
		p, err := config.ParseProfile(cleanFlags.profile)
		if err != nil {
			return o, err
		}
		o.Profile = p
	}
	o.DryRun = !cleanFlags.apply
	o.AssumeYes = cleanFlags.yes
	o.Interactive = cleanFlags.interactive
	if changed("strict") {
		o.Strict = cleanFlags.strict
	}
	if changed("no-strict") {
		o.Strict = !cleanFlags.noStrict
	}
	if changed("include-volumes") {
		o.IncludeVolumes = cleanFlags.volumes
	}
	if changed("include-global-caches") {
		o.IncludeGlobalCaches = cleanFlags.global
	}
	if changed("only") {
		o.Only = config.SplitList(cleanFlags.only)
	}
	if changed("skip") {
		o.Skip = config.SplitList(cleanFlags.skip)
	}
	return o, nil
}

func runClean(cmd *cobra.Command, args []string) error {
	opts, err := cleanOptions(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	lock, err := core.AcquireLock("clean")
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx := cmd.Context()
	connect, closeDocker := dockerConnector()
	defer closeDocker()

	env := clean.Env{
		Runner: &executil.ExecRunner{},
		Paths:  config.DefaultPaths(),
		Docker: connect,
	}
	sel := clean.Select(clean.Catalogue(env), opts)
	for _, name := range sel.Unknown {
		logrus.Warnf("unknown task %q ignored", name)
	}
	for _, name := range sel.OutOfProfile {
		logrus.Warnf("task %q is not part of the %s profile", name, opts.Profile)
	}

	var sampler core.Sampler
	if s, err := core.NewHomeSampler(); err != nil {
		logrus.Warnf("free-space sampling disabled: %v", err)
	} else {
		sampler = s
	}

	prompter := ui.NewPrompter()
	coord := &clean.Coordinator{Options: opts, Sampler: sampler, Prompter: prompter}
	logrus.WithFields(logrus.Fields{
		"profile": opts.Profile.String(),
		"mode":    opts.Mode(),
		"tasks":   clean.Names(sel.Tasks),
		"host":    core.HostString(),
	}).Info("clean started")

	out := cmd.OutOrStdout()
	plan := coord.Plan(ctx, sel.Tasks)
	if !opts.DryRun && !opts.AssumeYes && prompter.Interactive() {
		preview := plan.Preview()
		question := fmt.Sprintf("Proceed with cleanup of %d tasks (about %s)?",
			len(plan.Steps), ui.FormatSize(preview.Totals().Estimated))
		ok, err := prompter.Confirm(question)
		if err != nil || !ok {
			fmt.Fprint(out, clean.Report(preview))
			return clean.ErrDeclined
		}
	}

	res, err := coord.Execute(ctx, plan)
	fmt.Fprint(out, clean.Report(res))
	logrus.WithField("bytes", res.Totals().Reclaimed).Info("clean finished")
	return err
}

// dockerConnector returns a lazily connecting, memoized engine factory and
// a func closing the connection if one was made.
func dockerConnector() (func(context.Context) (clean.DockerEngine, error), func()) {
	var (
		once sync.Once
		cli  *docker.Client
		err  error
	)
	connect := func(ctx context.Context) (clean.DockerEngine, error) {
		once.Do(func() {
			cli, err = docker.NewClient(ctx)
			if err != nil {
				logrus.WithField("task", "docker").Debugf("engine unavailable: %v", err)
			}
		})
		if err != nil {
			return nil, err
		}
		return cli, nil
	}
	closeFn := func() {
		if cli != nil {
			_ = cli.Close()
		}
	}
	return connect, closeFn
}
