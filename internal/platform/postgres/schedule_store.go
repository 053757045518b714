package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/google/uuid"
)

// PostgresScheduleStore implements the store.ScheduleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of
// the ScheduleStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

const scheduleColumns = `user_id, problem_id, interval_days, next_review_at,
		success_count, failure_count, created_at, updated_at`

// Create implements store.ScheduleStore.Create.
func (s *PostgresScheduleStore) Create(ctx context.Context, state *domain.ScheduleState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO schedule_states (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		state.UserID, state.ProblemID, state.Interval, state.NextReviewAt,
		state.SuccessCount, state.FailureCount, state.CreatedAt, state.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Get implements store.ScheduleStore.Get.
func (s *PostgresScheduleStore) Get(
	ctx context.Context,
	userID, problemID uuid.UUID,
) (*domain.ScheduleState, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_states
		WHERE user_id = $1 AND problem_id = $2`

	return s.scanState(s.db.QueryRowContext(ctx, query, userID, problemID))
}

// GetForUpdate implements store.ScheduleStore.GetForUpdate. The row
// lock serializes concurrent submissions for the same (user, problem)
// key for the remainder of the surrounding transaction.
func (s *PostgresScheduleStore) GetForUpdate(
	ctx context.Context,
	userID, problemID uuid.UUID,
) (*domain.ScheduleState, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_states
		WHERE user_id = $1 AND problem_id = $2
		FOR UPDATE`

	return s.scanState(s.db.QueryRowContext(ctx, query, userID, problemID))
}

// GetAllForUser implements store.ScheduleStore.GetAllForUser.
func (s *PostgresScheduleStore) GetAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	problemIDs []uuid.UUID,
) (map[uuid.UUID]*domain.ScheduleState, error) {
	states := make(map[uuid.UUID]*domain.ScheduleState, len(problemIDs))
	if len(problemIDs) == 0 {
		return states, nil
	}

	query := fmt.Sprintf(`
		SELECT `+scheduleColumns+`
		FROM schedule_states
		WHERE user_id = $1 AND problem_id IN (%s)`, placeholders(2, len(problemIDs)))

	args := make([]any, 0, len(problemIDs)+1)
	args = append(args, userID)
	for _, id := range problemIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		var state domain.ScheduleState
		if err := scanStateColumns(rows.Scan, &state); err != nil {
			return nil, MapError(err)
		}
		states[state.ProblemID] = &state
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return states, nil
}

// Update implements store.ScheduleStore.Update.
func (s *PostgresScheduleStore) Update(ctx context.Context, state *domain.ScheduleState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE schedule_states
		SET interval_days = $1, next_review_at = $2,
			success_count = $3, failure_count = $4, updated_at = $5
		WHERE user_id = $6 AND problem_id = $7`

	result, err := s.db.ExecContext(ctx, query,
		state.Interval, state.NextReviewAt,
		state.SuccessCount, state.FailureCount, state.UpdatedAt,
		state.UserID, state.ProblemID)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "schedule state"); err != nil {
		return store.ErrScheduleStateNotFound
	}

	return nil
}

// WithTx implements store.ScheduleStore.WithTx.
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresScheduleStore) scanState(row *sql.Row) (*domain.ScheduleState, error) {
	var state domain.ScheduleState
	if err := scanStateColumns(row.Scan, &state); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrScheduleStateNotFound
		}
		return nil, MapError(err)
	}

	return &state, nil
}

// scanStateColumns scans a schedule_states row in scheduleColumns order.
func scanStateColumns(scan func(...any) error, state *domain.ScheduleState) error {
	return scan(
		&state.UserID,
		&state.ProblemID,
		&state.Interval,
		&state.NextReviewAt,
		&state.SuccessCount,
		&state.FailureCount,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
}
