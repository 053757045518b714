package store

import (
	"context"
	"database/sql"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// ProblemStore defines the interface for catalog problem persistence.
type ProblemStore interface {
	// Create saves a new catalog problem.
	// Returns validation errors from the domain Problem if data is invalid.
	Create(ctx context.Context, problem *domain.Problem) error

	// GetByID retrieves a problem by its unique ID.
	// Returns ErrProblemNotFound if the problem does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error)

	// GetByIDs retrieves the problems with the given IDs. IDs with no
	// matching problem are simply absent from the result; no error is
	// returned for them.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Problem, error)

	// ExistingIDs reports which of the given IDs exist in the catalog.
	// Used by batch reconciliation to detect unknown references with a
	// single query per batch.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// WithTx returns a new ProblemStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ProblemStore
}
