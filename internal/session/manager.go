package session

import (
	"errors"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/apiclient"
	"github.com/taskdeck/taskdeck/internal/state"
)

// Manager ties the API client to the on-disk vault so a successful login
// survives until an explicit logout.
type Manager struct {
	client *apiclient.Client
	vault  *state.Vault
	user   *domain.User
}

func NewManager(client *apiclient.Client, vault *state.Vault) *Manager {
	return &Manager{client: client, vault: vault}
}

// Restore loads a previously saved session, if any. A missing session is
// not an error.
func (m *Manager) Restore() error {
	token, user, err := m.vault.Load()
	if errors.Is(err, state.ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	m.client.SetToken(token)
	m.user = user
	return nil
}

// Login authenticates and persists the session.
func (m *Manager) Login(email, password string) (*domain.User, error) {
	resp, err := m.client.Login(email, password)
	if err != nil {
		return nil, err
	}
	user := fromSummary(resp.User)
	if err := m.vault.Save(resp.Token, user); err != nil {
		return nil, err
	}
	m.user = user
	return user, nil
}

// Signup registers an account. It does not log in; the server requires an
// explicit login afterwards.
func (m *Manager) Signup(name, email, password string) (*domain.User, error) {
	resp, err := m.client.Signup(name, email, password)
	if err != nil {
		return nil, err
	}
	return fromSummary(resp.User), nil
}

// Logout forgets the stored session.
func (m *Manager) Logout() error {
	m.client.SetToken("")
	m.user = nil
	return m.vault.Clear()
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.user != nil
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	return m.user
}

// Client exposes the authenticated API client.
func (m *Manager) Client() *apiclient.Client {
	return m.client
}

func fromSummary(summary transport.UserSummary) *domain.User {
	return &domain.User{
		ID:    summary.ID,
		Name:  summary.Name,
		Email: summary.Email,
	}
}
