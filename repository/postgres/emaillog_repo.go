package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

type emailLogRepository struct {
	pool *pgxpool.Pool
}

// NewEmailLogRepository returns a Postgres-backed delivery log.
func NewEmailLogRepository(pool *pgxpool.Pool) repository.EmailLogRepository {
	return &emailLogRepository{pool: pool}
}

func (r *emailLogRepository) Record(ctx context.Context, log *domain.EmailLog) error {
	if log == nil {
		return domain.ErrInvalidPayload
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO email_logs (id, to_address, from_address, subject, body, kind, status, error)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		log.ID,
		log.To,
		log.From,
		log.Subject,
		log.Body,
		log.Kind,
		log.Status,
		log.Error,
	).Scan(&log.CreatedAt)
}

func (r *emailLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM email_logs WHERE created_at < $1`
	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
