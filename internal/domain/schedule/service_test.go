package schedule

import (
	"testing"
	"time"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceApplyOutcome(t *testing.T) {
	t.Parallel()
	svc := NewService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil state is rejected", func(t *testing.T) {
		_, err := svc.ApplyOutcome(nil, true, 2.0, now)
		assert.ErrorIs(t, err, ErrNilState)
	})

	t.Run("non-positive multiplier is rejected", func(t *testing.T) {
		state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
		require.NoError(t, err)

		_, err = svc.ApplyOutcome(state, true, 0, now)
		assert.ErrorIs(t, err, ErrInvalidMultiplier)

		_, err = svc.ApplyOutcome(state, true, -1.5, now)
		assert.ErrorIs(t, err, ErrInvalidMultiplier)
	})

	t.Run("valid submission returns a new state", func(t *testing.T) {
		state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
		require.NoError(t, err)

		updated, err := svc.ApplyOutcome(state, true, 2.0, now)
		require.NoError(t, err)
		assert.NotSame(t, state, updated)
		assert.Equal(t, 2, updated.Interval)
		assert.Equal(t, 1, updated.SuccessCount)
		assert.NoError(t, updated.Validate())
	})

	t.Run("repeated application with same inputs is deterministic", func(t *testing.T) {
		state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
		require.NoError(t, err)

		first, err := svc.ApplyOutcome(state, true, 2.5, now)
		require.NoError(t, err)
		second, err := svc.ApplyOutcome(state, true, 2.5, now)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestServiceReset(t *testing.T) {
	t.Parallel()
	svc := NewService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil state is rejected", func(t *testing.T) {
		_, err := svc.Reset(nil, now)
		assert.ErrorIs(t, err, ErrNilState)
	})

	t.Run("reset restores initial values", func(t *testing.T) {
		state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
		require.NoError(t, err)
		state.Interval = 9
		state.SuccessCount = 3
		state.FailureCount = 1

		reset, err := svc.Reset(state, now)
		require.NoError(t, err)
		assert.Equal(t, 1, reset.Interval)
		assert.Zero(t, reset.SuccessCount)
		assert.Zero(t, reset.FailureCount)
		assert.True(t, reset.NextReviewAt.Equal(now))
	})
}
