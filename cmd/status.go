package cmd

import (
	"fmt"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/lakshaymaurya-felt/devsweep/internal/status"
	"github.com/spf13/cobra"
)

var statusBarWidth int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show free disk space",
	Long:  "Show used and free space on the home volume and every mounted partition.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		r, err := status.Collect(cmd.Context(), config.DefaultPaths().Home, status.DiskSource{})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), status.Render(r, statusBarWidth))
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusBarWidth, "width", 30, "Usage bar width")
}
