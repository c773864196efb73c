package taskview

import "github.com/taskdeck/taskdeck/domain"

// Group identifies a drop container on the board.
type Group string

const (
	GroupPending   Group = "pending"
	GroupCompleted Group = "completed"
)

// GroupOf returns the group a task currently belongs to.
func GroupOf(t domain.Task) Group {
	if t.Completed {
		return GroupCompleted
	}
	return GroupPending
}

// Transition is the state change a completed drop asks for. The caller
// applies it through the same toggle-complete path a manual click uses;
// grouping is then recomputed from the result, not from drop position.
type Transition struct {
	TaskID    string
	Completed bool
}

// ResolveDrop maps a drop target to a board group. The target is either a
// group container itself or another task, in which case the group is that
// task's current one. Unknown targets do not resolve.
func ResolveDrop(overID string, tasks []domain.Task) (Group, bool) {
	switch Group(overID) {
	case GroupPending, GroupCompleted:
		return Group(overID), true
	}
	for _, t := range tasks {
		if t.ID == overID {
			return GroupOf(t), true
		}
	}
	return "", false
}

// Machine tracks an in-progress drag gesture. The zero value is idle.
type Machine struct {
	taskID string
}

// Dragging returns the grabbed task ID while a gesture is in progress.
func (m *Machine) Dragging() (string, bool) {
	return m.taskID, m.taskID != ""
}

// Grab starts a gesture over a task card. It reports false when a gesture
// is already in progress.
func (m *Machine) Grab(taskID string) bool {
	if m.taskID != "" || taskID == "" {
		return false
	}
	m.taskID = taskID
	return true
}

// Cancel abandons the gesture with no mutation.
func (m *Machine) Cancel() {
	m.taskID = ""
}

// Drop ends the gesture over the given target. It returns the transition
// to apply, if any: a drop that does not resolve to a group, targets the
// dragged task's own group, or references an unknown task is a no-op.
// The machine is idle again afterwards either way.
func (m *Machine) Drop(overID string, tasks []domain.Task) (Transition, bool) {
	taskID := m.taskID
	m.taskID = ""
	if taskID == "" {
		return Transition{}, false
	}

	group, ok := ResolveDrop(overID, tasks)
	if !ok {
		return Transition{}, false
	}

	for _, t := range tasks {
		if t.ID != taskID {
			continue
		}
		if GroupOf(t) == group {
			return Transition{}, false
		}
		return Transition{TaskID: taskID, Completed: group == GroupCompleted}, true
	}
	return Transition{}, false
}
