package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/drillhq/drill-api/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, store.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, store.ErrInvalidEntity},
		{"check violation", &pgconn.PgError{Code: "23514"}, store.ErrInvalidEntity},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, store.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, store.ErrConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}

	t.Run("unrecognized errors pass through", func(t *testing.T) {
		t.Parallel()
		plain := errors.New("connection reset")
		assert.Equal(t, plain, MapError(plain))
	})
}

func TestMapErrorRetryable(t *testing.T) {
	t.Parallel()

	err := MapError(&pgconn.PgError{Code: "40001"})
	assert.True(t, store.IsRetryableError(err))

	err = MapError(&pgconn.PgError{Code: "23505"})
	assert.False(t, store.IsRetryableError(err))
}

// fakeResult implements sql.Result with a fixed row count.
type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "user"))

	err := CheckRowsAffected(fakeResult{rows: 0}, "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "user")

	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, ""), store.ErrNotFound)

	require.Error(t, CheckRowsAffected(nil, "user"))
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$2, $3, $4", placeholders(2, 3))
	assert.Equal(t, "", placeholders(1, 0))
}
