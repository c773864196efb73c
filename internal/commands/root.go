package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/internal/apiclient"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/state"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "A terminal client for the taskdeck service",
	Long: `taskdeck manages your tasks from the terminal: sign in once and the
session is remembered, then run "taskdeck dashboard" for the interactive board.`,
	// Bare "taskdeck" opens the board.
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCmd.RunE(cmd, args)
	},
}

// openSession builds the API client and restores any stored login. The
// caller owns closing the returned vault.
func openSession() (*session.Manager, *state.Vault, error) {
	vault, err := state.Open(state.DefaultPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	mgr := session.NewManager(apiclient.New(serverURL), vault)
	if err := mgr.Restore(); err != nil {
		vault.Close()
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}
	return mgr, vault, nil
}

// requireLogin is like openSession but fails when nobody is signed in.
func requireLogin() (*session.Manager, *state.Vault, error) {
	mgr, vault, err := openSession()
	if err != nil {
		return nil, nil, err
	}
	if !mgr.LoggedIn() {
		vault.Close()
		return nil, nil, fmt.Errorf("not logged in, run \"taskdeck login\" first")
	}
	return mgr, vault, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("TASKDECK_SERVER", "http://localhost:8080"), "base URL of the task service")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
