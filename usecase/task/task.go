// Package task orchestrates the task store gateway: CRUD scoped to the
// owning user, with defaults and validation applied ahead of persistence.
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

// Patch carries the fields of a partial update. Nil fields keep their
// current value.
type Patch struct {
	Title     *string
	Priority  *domain.Priority
	Deadline  *time.Time
	Completed *bool
	IsPinned  *bool
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, userID)
}

// CreateTask stores a new task. It always starts not-completed and
// not-pinned; a missing priority defaults to Medium.
func (uc *UseCase) CreateTask(ctx context.Context, userID, title string, priority domain.Priority, deadline *time.Time) (*domain.Task, error) {
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if priority == "" {
		priority = domain.DefaultPriority
	}
	if !priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
	}

	task := &domain.Task{
		UserID:   userID,
		Title:    title,
		Priority: priority,
		Deadline: deadline,
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("task created", zap.String("task_id", created.ID), zap.String("user_id", userID))
	return created, nil
}

// UpdateTask applies a partial update to the user's task and returns the
// result. Unspecified fields are left intact.
func (uc *UseCase) UpdateTask(ctx context.Context, userID, id string, patch Patch) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
		}
		task.Title = *patch.Title
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
		}
		task.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.IsPinned != nil {
		task.IsPinned = *patch.IsPinned
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if err := uc.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.String("task_id", id), zap.String("user_id", userID))
	return nil
}
