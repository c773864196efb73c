package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/domain"
)

// TaskRepository persists tasks. Every operation is scoped to the owning
// user; a task belonging to someone else behaves like a missing one.
type TaskRepository interface {
	// List returns the user's tasks ordered by deadline ascending, tasks
	// without a deadline first.
	List(ctx context.Context, userID string) ([]domain.Task, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
}
