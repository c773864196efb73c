package repository

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/domain"
)

// EmailLogRepository records delivery attempts and supports retention sweeps.
type EmailLogRepository interface {
	Record(ctx context.Context, log *domain.EmailLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
