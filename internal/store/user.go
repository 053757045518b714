package store

import (
	"context"
	"database/sql"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, hashing the plaintext password first.
	// Returns ErrEmailExists if the email is already in use.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateMultiplier changes the user's interval multiplier.
	// Returns ErrUserNotFound if the user does not exist and
	// domain.ErrInvalidMultiplier for a non-positive value.
	UpdateMultiplier(ctx context.Context, id uuid.UUID, multiplier float64) error

	// WithTx returns a new UserStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
