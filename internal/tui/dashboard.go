package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/apiclient"
	"github.com/taskdeck/taskdeck/internal/taskview"
)

// Focus represents which UI element receives key input
type Focus int

const (
	FocusBoard Focus = iota
	FocusSearch
	FocusDate
	FocusForm
)

type (
	tasksLoadedMsg struct {
		tasks []domain.Task
		err   error
	}
	mutationDoneMsg struct {
		err error
	}
)

// DashboardModel renders the pending/completed board and routes key input
// to searching, filtering, the new-task form and drag interaction.
type DashboardModel struct {
	client *apiclient.Client
	user   *domain.User

	width  int
	height int

	// All tasks from the last fetch; the board is derived on every render.
	tasks []domain.Task
	board taskview.Board

	focus  Focus
	column taskview.Group
	cursor int

	search    textinput.Model
	dateInput textinput.Model
	dateValue *time.Time

	// New-task form
	formInputs []textinput.Model
	formField  int

	drag taskview.Machine

	status  string
	loading bool
	err     error
}

// NewDashboardModel creates the dashboard for an authenticated user.
func NewDashboardModel(client *apiclient.Client, user *domain.User) DashboardModel {
	search := textinput.New()
	search.Placeholder = "search tasks..."
	search.CharLimit = 64

	dateInput := textinput.New()
	dateInput.Placeholder = "2026-01-31"
	dateInput.CharLimit = 10

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}
	inputs[0].Placeholder = "title"
	inputs[1].Placeholder = "priority (High/Medium/Low)"
	inputs[2].Placeholder = "deadline (optional, 2026-01-31)"

	return DashboardModel{
		client:     client,
		user:       user,
		column:     taskview.GroupPending,
		search:     search,
		dateInput:  dateInput,
		formInputs: inputs,
		loading:    true,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.fetchTasks()
}

func (m DashboardModel) fetchTasks() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		tasks, err := client.ListTasks()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m DashboardModel) mutate(fn func(*apiclient.Client) error) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return mutationDoneMsg{err: fn(client)}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks = msg.tasks
		m.rebuild()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		// The server owns ordering; refetch instead of patching locally.
		return m, m.fetchTasks()

	case tea.KeyMsg:
		switch m.focus {
		case FocusSearch:
			return m.updateSearch(msg)
		case FocusDate:
			return m.updateDate(msg)
		case FocusForm:
			return m.updateForm(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m *DashboardModel) rebuild() {
	query := taskview.Query{
		Search: m.search.Value(),
		Date:   m.dateValue,
	}
	m.board = taskview.Build(m.tasks, query, time.Now())
	m.clampCursor()
}

func (m *DashboardModel) clampCursor() {
	rows := m.rows(m.column)
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m DashboardModel) rows(group taskview.Group) []domain.Task {
	if group == taskview.GroupCompleted {
		return m.board.Completed
	}
	return m.board.Pending
}

func (m DashboardModel) selected() *domain.Task {
	rows := m.rows(m.column)
	if len(rows) == 0 || m.cursor >= len(rows) {
		return nil
	}
	return &rows[m.cursor]
}

func (m DashboardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if _, dragging := m.drag.Dragging(); dragging {
			m.drag.Cancel()
			m.status = "drag cancelled"
			return m, nil
		}
		if m.search.Value() != "" || m.dateValue != nil {
			m.search.SetValue("")
			m.dateValue = nil
			m.dateInput.SetValue("")
			m.rebuild()
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows(m.column))-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		m.column = taskview.GroupPending
		m.clampCursor()
		return m, nil

	case "right", "l":
		m.column = taskview.GroupCompleted
		m.clampCursor()
		return m, nil

	case "/":
		m.focus = FocusSearch
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.focus = FocusDate
		m.dateInput.Focus()
		return m, textinput.Blink

	case "n":
		m.focus = FocusForm
		m.formField = 0
		for i := range m.formInputs {
			m.formInputs[i].SetValue("")
			m.formInputs[i].Blur()
		}
		m.formInputs[0].Focus()
		return m, textinput.Blink

	case "r":
		m.loading = true
		return m, m.fetchTasks()

	case " ":
		if task := m.selected(); task != nil {
			completed := !task.Completed
			id := task.ID
			return m, m.mutate(func(c *apiclient.Client) error {
				_, err := c.UpdateTask(id, transport.TaskUpdateRequest{Completed: &completed})
				return err
			})
		}
		return m, nil

	case "p":
		if task := m.selected(); task != nil {
			pinned := !task.IsPinned
			id := task.ID
			return m, m.mutate(func(c *apiclient.Client) error {
				_, err := c.UpdateTask(id, transport.TaskUpdateRequest{IsPinned: &pinned})
				return err
			})
		}
		return m, nil

	case "d":
		if task := m.selected(); task != nil {
			id := task.ID
			return m, m.mutate(func(c *apiclient.Client) error {
				return c.DeleteTask(id)
			})
		}
		return m, nil

	case "g":
		if _, dragging := m.drag.Dragging(); dragging {
			return m, nil
		}
		if task := m.selected(); task != nil {
			if m.drag.Grab(task.ID) {
				m.status = fmt.Sprintf("moving %q, pick a column and press enter", task.Title)
			}
		}
		return m, nil

	case "enter":
		if _, dragging := m.drag.Dragging(); !dragging {
			return m, nil
		}
		overID := string(m.column)
		if target := m.selected(); target != nil {
			overID = target.ID
		}
		transition, ok := m.drag.Drop(overID, m.tasks)
		if !ok {
			m.status = ""
			return m, nil
		}
		completed := transition.Completed
		id := transition.TaskID
		m.status = ""
		return m, m.mutate(func(c *apiclient.Client) error {
			_, err := c.UpdateTask(id, transport.TaskUpdateRequest{Completed: &completed})
			return err
		})
	}
	return m, nil
}

func (m DashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.search.SetValue("")
		}
		m.focus = FocusBoard
		m.search.Blur()
		m.rebuild()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.rebuild()
	return m, cmd
}

func (m DashboardModel) updateDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focus = FocusBoard
		m.dateInput.Blur()
		if parsed, err := time.Parse("2006-01-02", m.dateInput.Value()); err == nil {
			m.dateValue = &parsed
		} else {
			m.dateValue = nil
			m.dateInput.SetValue("")
		}
		m.rebuild()
		return m, nil
	case "esc":
		m.focus = FocusBoard
		m.dateInput.Blur()
		m.dateInput.SetValue("")
		m.dateValue = nil
		m.rebuild()
		return m, nil
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m DashboardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusBoard
		for i := range m.formInputs {
			m.formInputs[i].Blur()
		}
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if msg.String() == "tab" || msg.String() == "down" {
			m.formField = (m.formField + 1) % len(m.formInputs)
		} else {
			m.formField = (m.formField + len(m.formInputs) - 1) % len(m.formInputs)
		}
		for i := range m.formInputs {
			if i == m.formField {
				m.formInputs[i].Focus()
			} else {
				m.formInputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case "enter":
		title := strings.TrimSpace(m.formInputs[0].Value())
		if title == "" {
			m.status = "title is required"
			return m, nil
		}
		req := transport.TaskCreateRequest{
			Title:    title,
			Priority: strings.TrimSpace(m.formInputs[1].Value()),
			Deadline: strings.TrimSpace(m.formInputs[2].Value()),
		}
		m.focus = FocusBoard
		for i := range m.formInputs {
			m.formInputs[i].Blur()
		}
		return m, m.mutate(func(c *apiclient.Client) error {
			_, err := c.CreateTask(req)
			return err
		})
	}

	var cmd tea.Cmd
	m.formInputs[m.formField], cmd = m.formInputs[m.formField].Update(msg)
	return m, cmd
}
