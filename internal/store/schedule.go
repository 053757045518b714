package store

import (
	"context"
	"database/sql"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// ScheduleStore defines the interface for schedule state persistence,
// keyed by (user, problem).
type ScheduleStore interface {
	// Create saves a new schedule state entry.
	// Returns validation errors from the domain ScheduleState if data is
	// invalid, and ErrDuplicate if the entry already exists.
	Create(ctx context.Context, state *domain.ScheduleState) error

	// Get retrieves the schedule state for a user and problem.
	// Returns ErrScheduleStateNotFound if the entry does not exist.
	// NOTE: This method does NOT lock the row; do not use it when you
	// plan to update the row under concurrency.
	Get(ctx context.Context, userID, problemID uuid.UUID) (*domain.ScheduleState, error)

	// GetForUpdate retrieves the schedule state with a row-level lock
	// using SELECT FOR UPDATE. Use within a transaction when the row
	// will be updated, so concurrent submissions for the same key
	// serialize instead of losing updates.
	// Returns ErrScheduleStateNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, userID, problemID uuid.UUID) (*domain.ScheduleState, error)

	// GetAllForUser retrieves the user's schedule states for the given
	// problems, keyed by problem ID. Problems with no state are absent
	// from the map.
	GetAllForUser(
		ctx context.Context,
		userID uuid.UUID,
		problemIDs []uuid.UUID,
	) (map[uuid.UUID]*domain.ScheduleState, error)

	// Update modifies an existing schedule state entry, identified by
	// the UserID and ProblemID fields of the given state.
	// Returns ErrScheduleStateNotFound if the entry does not exist.
	Update(ctx context.Context, state *domain.ScheduleState) error

	// WithTx returns a new ScheduleStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ScheduleStore
}
