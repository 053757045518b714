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

// PostgresProblemStore implements the store.ProblemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProblemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProblemStore creates a new PostgreSQL implementation of the
// ProblemStore interface. If logger is nil, a default logger will be used.
func NewPostgresProblemStore(db store.DBTX, logger *slog.Logger) *PostgresProblemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProblemStore{
		db:     db,
		logger: logger.With(slog.String("component", "problem_store")),
	}
}

// Ensure PostgresProblemStore implements store.ProblemStore interface
var _ store.ProblemStore = (*PostgresProblemStore)(nil)

// Create implements store.ProblemStore.Create.
func (s *PostgresProblemStore) Create(ctx context.Context, problem *domain.Problem) error {
	if err := problem.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO problems (id, title, difficulty, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		problem.ID, problem.Title, problem.Difficulty,
		problem.URL, problem.CreatedAt, problem.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ProblemStore.GetByID.
func (s *PostgresProblemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	query := `
		SELECT id, title, difficulty, url, created_at, updated_at
		FROM problems
		WHERE id = $1`

	var problem domain.Problem
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&problem.ID,
		&problem.Title,
		&problem.Difficulty,
		&problem.URL,
		&problem.CreatedAt,
		&problem.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrProblemNotFound
		}
		return nil, MapError(err)
	}

	return &problem, nil
}

// GetByIDs implements store.ProblemStore.GetByIDs.
func (s *PostgresProblemStore) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]*domain.Problem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, title, difficulty, url, created_at, updated_at
		FROM problems
		WHERE id IN (%s)`, placeholders(1, len(ids)))

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
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

	var problems []*domain.Problem
	for rows.Next() {
		var problem domain.Problem
		if err := rows.Scan(
			&problem.ID,
			&problem.Title,
			&problem.Difficulty,
			&problem.URL,
			&problem.CreatedAt,
			&problem.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		problems = append(problems, &problem)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return problems, nil
}

// ExistingIDs implements store.ProblemStore.ExistingIDs.
func (s *PostgresProblemStore) ExistingIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]bool, error) {
	existing := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query := fmt.Sprintf(`SELECT id FROM problems WHERE id IN (%s)`, placeholders(1, len(ids)))

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
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
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return existing, nil
}

// WithTx implements store.ProblemStore.WithTx.
func (s *PostgresProblemStore) WithTx(tx *sql.Tx) store.ProblemStore {
	return &PostgresProblemStore{
		db:     tx,
		logger: s.logger,
	}
}
