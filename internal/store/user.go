package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's password must
	// already be hashed. Username and email are globally unique; the
	// store's unique constraints are the authoritative guard, so a
	// losing racer gets ErrEmailExists or ErrUsernameExists even when a
	// pre-check saw no conflict.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update persists the complete user record, including profile fields,
	// the hashed password and the last-login timestamp.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists/ErrUsernameExists on a uniqueness conflict.
	Update(ctx context.Context, user *domain.User) error
}
