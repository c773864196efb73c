package domain

import "time"

// Priority classifies how important a task is to its owner.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Weight returns the sort weight of the priority. Higher weight sorts
// first; unknown values weigh zero and sink below Low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task represents a user-owned unit of work.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user"`
	Title     string     `json:"title"`
	Priority  Priority   `json:"priority"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Completed bool       `json:"completed"`
	IsPinned  bool       `json:"isPinned"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UrgencyCategory buckets a deadline relative to the current moment.
// Lower categories sort first.
type UrgencyCategory int

const (
	UrgencyOverdue UrgencyCategory = 0
	UrgencyToday   UrgencyCategory = 1
	UrgencyLater   UrgencyCategory = 2
)

// Urgency classifies a deadline against now. The today check is day
// granular: a deadline earlier today is Today, not Overdue, regardless of
// its time-of-day. A nil deadline is Later.
func Urgency(deadline *time.Time, now time.Time) UrgencyCategory {
	if deadline == nil {
		return UrgencyLater
	}
	if SameDay(*deadline, now) {
		return UrgencyToday
	}
	if deadline.Before(now) {
		return UrgencyOverdue
	}
	return UrgencyLater
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
