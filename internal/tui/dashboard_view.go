package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/taskview"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	activeColumnStyle = columnStyle.Copy().
				BorderForeground(lipgloss.Color(ColorAccentMain))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorAccentBright))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))
)

func (m DashboardModel) View() string {
	if m.loading {
		return mutedStyle.Render("loading tasks...")
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v (press r to retry, q to quit)", m.err))
	}

	var b strings.Builder

	header := "Tasks"
	if m.user != nil && m.user.Name != "" {
		header = fmt.Sprintf("Tasks · %s", m.user.Name)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	if m.focus == FocusSearch || m.search.Value() != "" {
		b.WriteString("search: " + m.search.View() + "\n")
	}
	if m.focus == FocusDate {
		b.WriteString("filter date: " + m.dateInput.View() + "\n")
	} else if m.dateValue != nil {
		b.WriteString(mutedStyle.Render("filter date: "+m.dateValue.Format("2006-01-02")) + "\n")
	}
	b.WriteString("\n")

	if m.focus == FocusForm {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderBoard())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m DashboardModel) renderBoard() string {
	colWidth := 40
	if m.width > 0 {
		if w := m.width/2 - 4; w > 20 {
			colWidth = w
		}
	}

	pending := m.renderColumn("Pending", m.board.Pending, taskview.GroupPending, colWidth)
	completed := m.renderColumn("Completed", m.board.Completed, taskview.GroupCompleted, colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, pending, " ", completed)
}

func (m DashboardModel) renderColumn(heading string, tasks []domain.Task, group taskview.Group, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", heading, len(tasks))))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("nothing here"))
	}

	draggedID, dragging := m.drag.Dragging()
	for i, task := range tasks {
		line := m.renderTask(task, width-4)
		switch {
		case dragging && task.ID == draggedID:
			line = mutedStyle.Render("⇅ " + line)
		case group == m.column && i == m.cursor:
			line = selectedRowStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}

	style := columnStyle
	if group == m.column {
		style = activeColumnStyle
	}
	return style.Width(width).Render(b.String())
}

func (m DashboardModel) renderTask(task domain.Task, width int) string {
	var marks []string
	if task.IsPinned {
		marks = append(marks, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPinned)).Render("★"))
	}
	marks = append(marks, priorityMark(task.Priority))

	title := task.Title
	if width > 8 && len(title) > width-8 {
		title = title[:width-8] + "…"
	}

	line := strings.Join(marks, "") + " " + title
	if task.Deadline != nil {
		line += " " + deadlineMark(*task.Deadline, time.Now())
	}
	return line
}

func priorityMark(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("!")
	case domain.PriorityLow:
		return mutedStyle.Render("·")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render("•")
	}
}

func deadlineMark(deadline, now time.Time) string {
	switch domain.Urgency(&deadline, now) {
	case domain.UrgencyOverdue:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOverdue)).Render("OVERDUE")
	case domain.UrgencyToday:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorToday)).Render("TODAY")
	default:
		return mutedStyle.Render(deadline.Format("Jan 2"))
	}
}

func (m DashboardModel) renderForm() string {
	labels := []string{"Title", "Priority", "Deadline"}
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task"))
	b.WriteString("\n\n")
	for i, input := range m.formInputs {
		b.WriteString(fmt.Sprintf("%-9s %s\n", labels[i], input.View()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter save · tab next field · esc cancel"))
	return columnStyle.Width(60).Render(b.String())
}

func (m DashboardModel) helpLine() string {
	if _, dragging := m.drag.Dragging(); dragging {
		return "←/→ pick column · enter drop · esc cancel"
	}
	switch m.focus {
	case FocusSearch:
		return "enter apply · esc clear"
	case FocusDate:
		return "enter apply · esc clear"
	case FocusForm:
		return "enter save · esc cancel"
	}
	return "↑/↓ move · ←/→ column · space done · p pin · d delete · g grab · n new · / search · f date · r reload · q quit"
}
