package cmd

import (
	"fmt"
	"os"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug      bool
	configPath string

	// Loaded once per invocation by the root pre-run.
	fileConfig = &config.File{}
	closeLog   = func() {}

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "devsweep",
	Short: "Reclaim disk space from developer caches",
	Long: `devsweep - Reclaim disk space on a developer workstation.

Cleans package-manager, build and IDE caches with per-task estimates and
measured reclaim, and purges regenerable project directories such as
node_modules and target. Every command is a dry run unless --apply is given.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, closer, err := logging.Setup(debug, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
		closeLog = closer
		logrus.WithField("path", path).Debugf("devsweep %s (%s)", appVersion, appCommit)

		if configPath == "" {
			configPath = config.DefaultFilePath()
		}
		f, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		fileConfig = f
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	defer func() { closeLog() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Defaults file (default $XDG_CONFIG_HOME/devsweep/config.yaml)")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
