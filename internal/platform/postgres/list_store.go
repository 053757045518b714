package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/google/uuid"
)

// PostgresListStore implements the store.ListStore interface using a
// PostgreSQL database as the storage backend. List records live in
// problem_lists; the member set lives in the list_problems join table.
type PostgresListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListStore creates a new PostgreSQL implementation of the
// ListStore interface. If logger is nil, a default logger will be used.
func NewPostgresListStore(db store.DBTX, logger *slog.Logger) *PostgresListStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresListStore{
		db:     db,
		logger: logger.With(slog.String("component", "list_store")),
	}
}

// Ensure PostgresListStore implements store.ListStore interface
var _ store.ListStore = (*PostgresListStore)(nil)

// Create implements store.ListStore.Create.
func (s *PostgresListStore) Create(ctx context.Context, list *domain.ProblemList) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO problem_lists (id, owner_id, name, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		list.ID, list.OwnerID, list.Name, string(list.Visibility),
		list.CreatedAt, list.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Get implements store.ListStore.Get.
func (s *PostgresListStore) Get(ctx context.Context, id uuid.UUID) (*domain.ProblemList, error) {
	query := `
		SELECT id, owner_id, name, visibility, created_at, updated_at
		FROM problem_lists
		WHERE id = $1`

	return s.scanList(s.db.QueryRowContext(ctx, query, id))
}

// GetForUpdate implements store.ListStore.GetForUpdate. The row lock
// serializes concurrent edits of the same list for the remainder of the
// surrounding transaction.
func (s *PostgresListStore) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ProblemList, error) {
	query := `
		SELECT id, owner_id, name, visibility, created_at, updated_at
		FROM problem_lists
		WHERE id = $1
		FOR UPDATE`

	return s.scanList(s.db.QueryRowContext(ctx, query, id))
}

// Update implements store.ListStore.Update.
func (s *PostgresListStore) Update(ctx context.Context, list *domain.ProblemList) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE problem_lists
		SET name = $1, visibility = $2, updated_at = $3
		WHERE id = $4`

	result, err := s.db.ExecContext(ctx, query,
		list.Name, string(list.Visibility), list.UpdatedAt, list.ID)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "problem list"); err != nil {
		return store.ErrListNotFound
	}

	return nil
}

// Delete implements store.ListStore.Delete. Member rows go with the
// list via ON DELETE CASCADE.
func (s *PostgresListStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM problem_lists WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "problem list"); err != nil {
		return store.ErrListNotFound
	}

	return nil
}

// GetMembers implements store.ListStore.GetMembers.
func (s *PostgresListStore) GetMembers(
	ctx context.Context,
	listID uuid.UUID,
) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT problem_id FROM list_problems WHERE list_id = $1`, listID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var members []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return members, nil
}

// ReplaceMembers implements store.ListStore.ReplaceMembers. The member
// set is swapped wholesale; callers run this inside the transaction
// that holds the list's row lock so a batch lands as one write.
func (s *PostgresListStore) ReplaceMembers(
	ctx context.Context,
	listID uuid.UUID,
	members []uuid.UUID,
) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM list_problems WHERE list_id = $1`, listID); err != nil {
		return MapError(err)
	}

	if len(members) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO list_problems (list_id, problem_id) VALUES `)
	args := make([]any, 0, len(members)+1)
	args = append(args, listID)
	for i, problemID := range members {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($1, $%d)", i+2)
		args = append(args, problemID)
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return MapError(err)
	}

	return nil
}

// WithTx implements store.ListStore.WithTx.
func (s *PostgresListStore) WithTx(tx *sql.Tx) store.ListStore {
	return &PostgresListStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresListStore) scanList(row *sql.Row) (*domain.ProblemList, error) {
	var list domain.ProblemList
	var visibility string
	err := row.Scan(
		&list.ID,
		&list.OwnerID,
		&list.Name,
		&visibility,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrListNotFound
		}
		return nil, MapError(err)
	}
	list.Visibility = domain.Visibility(visibility)

	return &list, nil
}
