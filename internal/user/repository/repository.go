package repository

import (
	"context"

	"notekeeper/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	// GetByID returns the projected user (no password hash) for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns the user with the given email including the password
	// hash, or nil if not found. Lookup is case-insensitive.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
