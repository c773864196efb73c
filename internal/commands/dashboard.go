package commands

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive task board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := requireLogin()
		if err != nil {
			return err
		}
		defer vault.Close()

		return tui.RunDashboard(mgr.Client(), mgr.CurrentUser())
	},
}
