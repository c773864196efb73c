package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/domain"
)

// UserRepository persists accounts. Email lookups are case-insensitive:
// implementations match the lowercased address.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
