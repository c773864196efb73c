// Package taskview derives the display order and grouping of a user's
// tasks from their raw state plus ephemeral UI filters. It is pure: the
// caller owns the task slice and the clock.
package taskview

import (
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/domain"
)

// Query holds the ephemeral display filters.
type Query struct {
	// Search keeps only tasks whose title contains it, case-insensitively.
	Search string
	// Date, when set, keeps only tasks whose deadline falls on that
	// calendar day. Tasks without a deadline never match.
	Date *time.Time
}

// Board is the final display grouping. Pending and Completed partition the
// filtered set and each preserve the global sort order.
type Board struct {
	Pending   []domain.Task
	Completed []domain.Task
}

// Build runs the full pipeline: sort, filter, partition.
func Build(tasks []domain.Task, q Query, now time.Time) Board {
	return Partition(Filter(Sort(tasks, now), q))
}

// Sort returns the tasks in display order without mutating the input.
// The order is stable and multi-key: pinned first, then deadline urgency
// ascending, then priority descending, then deadline ascending when both
// tasks have one. Remaining ties keep their prior relative order.
func Sort(tasks []domain.Task, now time.Time) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}

		catA := domain.Urgency(a.Deadline, now)
		catB := domain.Urgency(b.Deadline, now)
		if catA != catB {
			return catA < catB
		}

		if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
			return wa > wb
		}

		if a.Deadline != nil && b.Deadline != nil {
			return a.Deadline.Before(*b.Deadline)
		}
		return false
	})

	return sorted
}

// Filter keeps the tasks matching the query, preserving order.
func Filter(tasks []domain.Task, q Query) []domain.Task {
	search := strings.ToLower(q.Search)

	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if q.Date != nil {
			if t.Deadline == nil || !domain.SameDay(*t.Deadline, *q.Date) {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Partition splits tasks into pending and completed groups, preserving
// relative order within each.
func Partition(tasks []domain.Task) Board {
	board := Board{
		Pending:   make([]domain.Task, 0, len(tasks)),
		Completed: make([]domain.Task, 0, len(tasks)),
	}
	for _, t := range tasks {
		if t.Completed {
			board.Completed = append(board.Completed, t)
		} else {
			board.Pending = append(board.Pending, t)
		}
	}
	return board
}
