package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/domain"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func ts(t time.Time) *time.Time { return &t }

func task(id string, mutate ...func(*domain.Task)) domain.Task {
	t := domain.Task{
		ID:       id,
		Title:    "task " + id,
		Priority: domain.PriorityMedium,
	}
	for _, m := range mutate {
		m(&t)
	}
	return t
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSortPinnedBeforeUnpinned(t *testing.T) {
	tasks := []domain.Task{
		task("a", func(t *domain.Task) { t.Priority = domain.PriorityHigh; t.Deadline = ts(now.Add(-48 * time.Hour)) }),
		task("b", func(t *domain.Task) { t.IsPinned = true; t.Priority = domain.PriorityLow }),
	}

	sorted := Sort(tasks, now)
	assert.Equal(t, []string{"b", "a"}, ids(sorted), "pin outranks urgency and priority")
}

func TestSortUrgencyOverridesPriority(t *testing.T) {
	tasks := []domain.Task{
		task("later-high", func(t *domain.Task) { t.Priority = domain.PriorityHigh; t.Deadline = ts(now.Add(72 * time.Hour)) }),
		task("today-low", func(t *domain.Task) { t.Priority = domain.PriorityLow; t.Deadline = ts(now.Add(time.Hour)) }),
		task("overdue-low", func(t *domain.Task) { t.Priority = domain.PriorityLow; t.Deadline = ts(now.Add(-48 * time.Hour)) }),
	}

	sorted := Sort(tasks, now)
	assert.Equal(t, []string{"overdue-low", "today-low", "later-high"}, ids(sorted))
}

func TestSortPriorityWithinCategory(t *testing.T) {
	due := ts(now.Add(72 * time.Hour))
	tasks := []domain.Task{
		task("low", func(t *domain.Task) { t.Priority = domain.PriorityLow; t.Deadline = due }),
		task("high", func(t *domain.Task) { t.Priority = domain.PriorityHigh; t.Deadline = due }),
		task("medium", func(t *domain.Task) { t.Priority = domain.PriorityMedium; t.Deadline = due }),
	}

	sorted := Sort(tasks, now)
	assert.Equal(t, []string{"high", "medium", "low"}, ids(sorted))
}

func TestSortDeadlineTieBreak(t *testing.T) {
	tasks := []domain.Task{
		task("friday", func(t *domain.Task) { t.Deadline = ts(now.Add(96 * time.Hour)) }),
		task("thursday", func(t *domain.Task) { t.Deadline = ts(now.Add(72 * time.Hour)) }),
		// No deadline: same category and priority as the dated ones, so it
		// must keep its relative position instead of being reordered.
		task("undated"),
	}

	sorted := Sort(tasks, now)
	assert.Equal(t, []string{"thursday", "friday", "undated"}, ids(sorted))
}

func TestSortIsStable(t *testing.T) {
	tasks := []domain.Task{
		task("first"),
		task("second"),
		task("third"),
	}

	sorted := Sort(tasks, now)
	assert.Equal(t, []string{"first", "second", "third"}, ids(sorted))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		task("a"),
		task("b", func(t *domain.Task) { t.IsPinned = true }),
	}

	_ = Sort(tasks, now)
	assert.Equal(t, []string{"a", "b"}, ids(tasks))
}

func TestDeadlineEqualToNowIsToday(t *testing.T) {
	deadline := now // equal to the second
	assert.Equal(t, domain.UrgencyToday, domain.Urgency(&deadline, now))

	earlierToday := now.Add(-2 * time.Hour)
	assert.Equal(t, domain.UrgencyToday, domain.Urgency(&earlierToday, now))

	yesterday := now.Add(-24 * time.Hour)
	assert.Equal(t, domain.UrgencyOverdue, domain.Urgency(&yesterday, now))

	assert.Equal(t, domain.UrgencyLater, domain.Urgency(nil, now))
}

func TestFilterSearch(t *testing.T) {
	tasks := []domain.Task{
		task("a", func(t *domain.Task) { t.Title = "Buy milk" }),
		task("b", func(t *domain.Task) { t.Title = "Write report" }),
		task("c", func(t *domain.Task) { t.Title = "buy MILK and eggs" }),
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "case insensitive substring", search: "MiLk", want: []string{"a", "c"}},
		{name: "empty search matches all", search: "", want: []string{"a", "b", "c"}},
		{name: "no match", search: "groceries", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tasks, Query{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterDate(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		task("on-day", func(t *domain.Task) { t.Deadline = ts(day.Add(9 * time.Hour)) }),
		task("other-day", func(t *domain.Task) { t.Deadline = ts(day.Add(30 * time.Hour)) }),
		task("undated"),
	}

	got := Filter(tasks, Query{Date: &day})
	assert.Equal(t, []string{"on-day"}, ids(got), "date filter drops other days and undated tasks")
}

func TestPartitionIsExact(t *testing.T) {
	tasks := []domain.Task{
		task("p1"),
		task("c1", func(t *domain.Task) { t.Completed = true }),
		task("p2"),
		task("c2", func(t *domain.Task) { t.Completed = true }),
	}

	board := Partition(tasks)
	assert.Equal(t, []string{"p1", "p2"}, ids(board.Pending))
	assert.Equal(t, []string{"c1", "c2"}, ids(board.Completed))
	assert.Len(t, board.Pending, len(tasks)-len(board.Completed), "no overlap, no omission")
}

func TestBuildEmptySet(t *testing.T) {
	board := Build(nil, Query{}, now)
	assert.Empty(t, board.Pending)
	assert.Empty(t, board.Completed)
}

func TestToggleCompleteMovesGroups(t *testing.T) {
	tasks := []domain.Task{
		task("a"),
		task("b"),
	}

	before := Build(tasks, Query{}, now)
	require.Equal(t, []string{"a", "b"}, ids(before.Pending))
	require.Empty(t, before.Completed)

	tasks[0].Completed = true
	after := Build(tasks, Query{}, now)
	assert.Equal(t, []string{"b"}, ids(after.Pending))
	assert.Equal(t, []string{"a"}, ids(after.Completed))
}
