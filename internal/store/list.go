package store

import (
	"context"
	"database/sql"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// ListStore defines the interface for problem list persistence: the
// list record itself plus its member set.
type ListStore interface {
	// Create saves a new problem list with an empty member set.
	Create(ctx context.Context, list *domain.ProblemList) error

	// Get retrieves a list by its unique ID.
	// Returns ErrListNotFound if the list does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.ProblemList, error)

	// GetForUpdate retrieves a list with a row-level lock using
	// SELECT FOR UPDATE. Use within a transaction for the atomic
	// read-modify-write around membership reconciliation.
	// Returns ErrListNotFound if the list does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ProblemList, error)

	// Update modifies a list's name and visibility.
	// Returns ErrListNotFound if the list does not exist.
	Update(ctx context.Context, list *domain.ProblemList) error

	// Delete removes a list and its member set.
	// Returns ErrListNotFound if the list does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetMembers retrieves the list's member problem IDs. Order is not
	// significant; callers sort for presentation.
	GetMembers(ctx context.Context, listID uuid.UUID) ([]uuid.UUID, error)

	// ReplaceMembers overwrites the list's member set. This is the
	// single persisted write of a reconciliation batch.
	ReplaceMembers(ctx context.Context, listID uuid.UUID, members []uuid.UUID) error

	// WithTx returns a new ListStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ListStore
}
