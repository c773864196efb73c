package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/apiclient"
)

// RunDashboard starts the interactive task board for an authenticated user.
func RunDashboard(client *apiclient.Client, user *domain.User) error {
	model := NewDashboardModel(client, user)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
