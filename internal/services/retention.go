package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/repository"
)

// RetentionConfig controls the periodic email-log cleanup.
type RetentionConfig struct {
	Schedule string
	MaxAge   time.Duration
}

// Retention prunes old email delivery logs on a cron schedule.
type Retention struct {
	logs   repository.EmailLogRepository
	cfg    RetentionConfig
	cron   *cron.Cron
	logger *zap.Logger
}

func NewRetention(logs repository.EmailLogRepository, cfg RetentionConfig, logger *zap.Logger) *Retention {
	if cfg.Schedule == "" {
		cfg.Schedule = "@daily"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retention{
		logs:   logs,
		cfg:    cfg,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the cleanup job. The schedule error is returned so a
// misconfigured expression fails at boot rather than silently never running.
func (r *Retention) Start() error {
	_, err := r.cron.AddFunc(r.cfg.Schedule, r.sweep)
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (r *Retention) Stop(ctx context.Context) {
	done := r.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (r *Retention) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-r.cfg.MaxAge)
	removed, err := r.Sweep(ctx, cutoff)
	if err != nil {
		r.logger.Error("email log cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		r.logger.Info("email logs pruned", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
	}
}

// Sweep removes email logs created before cutoff.
func (r *Retention) Sweep(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.logs.DeleteOlderThan(ctx, cutoff)
}
