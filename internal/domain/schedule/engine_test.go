package schedule

import (
	"testing"
	"time"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

func TestNextInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name       string
		current    int
		passed     bool
		multiplier float64
		expected   int
	}{
		{
			name:       "fail resets interval to one day",
			current:    10,
			passed:     false,
			multiplier: 2.0,
			expected:   1,
		},
		{
			name:       "first pass uses the multiplier directly",
			current:    1,
			passed:     true,
			multiplier: 2.0,
			expected:   2, // 1 * 2.0 = 2
		},
		{
			name:       "pass scales interval by multiplier",
			current:    4,
			passed:     true,
			multiplier: 2.0,
			expected:   8, // 4 * 2.0 = 8
		},
		{
			name:       "fractional result rounds to nearest day",
			current:    3,
			passed:     true,
			multiplier: 1.5,
			expected:   5, // 3 * 1.5 = 4.5 → 5
		},
		{
			name:       "tiny multiplier never drops below one day",
			current:    1,
			passed:     true,
			multiplier: 0.1,
			expected:   1, // round(0.1) = 0 → clamped to 1
		},
		{
			name:       "multiplier of one keeps the interval",
			current:    7,
			passed:     true,
			multiplier: 1.0,
			expected:   7,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval := nextInterval(tc.current, tc.passed, tc.multiplier)

			if interval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, interval)
			}
		})
	}
}

func TestNextReviewDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("pass schedules interval days ahead", func(t *testing.T) {
		next := nextReviewDate(4, true, now)
		expected := now.AddDate(0, 0, 4)
		if !next.Equal(expected) {
			t.Errorf("Expected next review %v, got %v", expected, next)
		}
	})

	t.Run("fail is due immediately", func(t *testing.T) {
		next := nextReviewDate(1, false, now)
		if !next.Equal(now) {
			t.Errorf("Expected next review %v, got %v", now, next)
		}
	})
}

func TestApplyOutcomeScenario(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	state, err := domain.NewScheduleState(uuid.New(), uuid.New(), t0)
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}

	// Pass at t0 with multiplier 2.0: interval 1 → 2, due t0+2d.
	state = applyOutcome(state, true, 2.0, t0)
	if state.Interval != 2 {
		t.Errorf("Expected interval 2, got %d", state.Interval)
	}
	if !state.NextReviewAt.Equal(t0.AddDate(0, 0, 2)) {
		t.Errorf("Expected next review at t0+2d, got %v", state.NextReviewAt)
	}
	if state.SuccessCount != 1 || state.FailureCount != 0 {
		t.Errorf("Expected counts 1/0, got %d/%d", state.SuccessCount, state.FailureCount)
	}

	// Pass again at t0+2d: interval 2 → 4, due t0+6d.
	t1 := t0.AddDate(0, 0, 2)
	state = applyOutcome(state, true, 2.0, t1)
	if state.Interval != 4 {
		t.Errorf("Expected interval 4, got %d", state.Interval)
	}
	if !state.NextReviewAt.Equal(t0.AddDate(0, 0, 6)) {
		t.Errorf("Expected next review at t0+6d, got %v", state.NextReviewAt)
	}
	if state.SuccessCount != 2 || state.FailureCount != 0 {
		t.Errorf("Expected counts 2/0, got %d/%d", state.SuccessCount, state.FailureCount)
	}

	// Fail: interval back to 1, due immediately, failure counted.
	t2 := t0.AddDate(0, 0, 6)
	state = applyOutcome(state, false, 2.0, t2)
	if state.Interval != 1 {
		t.Errorf("Expected interval 1, got %d", state.Interval)
	}
	if !state.NextReviewAt.Equal(t2) {
		t.Errorf("Expected next review at %v, got %v", t2, state.NextReviewAt)
	}
	if state.SuccessCount != 2 || state.FailureCount != 1 {
		t.Errorf("Expected counts 2/1, got %d/%d", state.SuccessCount, state.FailureCount)
	}
}

func TestApplyOutcomeDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	original, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}

	_ = applyOutcome(original, true, 3.0, now)

	if original.Interval != 1 || original.SuccessCount != 0 {
		t.Errorf("Input state was mutated: %+v", original)
	}
}

func TestApplyOutcomeProperties(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	multipliers := []float64{0.5, 1.0, 1.3, 2.0, 3.7}
	intervals := []int{1, 2, 5, 30, 365}

	for _, m := range multipliers {
		for _, iv := range intervals {
			state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now)
			if err != nil {
				t.Fatalf("Failed to create state: %v", err)
			}
			state.Interval = iv

			passed := applyOutcome(state, true, m, now)
			if passed.Interval < 1 {
				t.Errorf("Pass with m=%v iv=%d produced interval %d < 1", m, iv, passed.Interval)
			}
			if !passed.NextReviewAt.After(now) {
				t.Errorf("Pass with m=%v iv=%d not scheduled in the future", m, iv)
			}

			failed := applyOutcome(state, false, m, now)
			if failed.Interval != 1 {
				t.Errorf("Fail with m=%v iv=%d produced interval %d != 1", m, iv, failed.Interval)
			}
			if !failed.NextReviewAt.Equal(now) {
				t.Errorf("Fail with m=%v iv=%d not due immediately", m, iv)
			}
		}
	}
}

func TestResetState(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	state, err := domain.NewScheduleState(uuid.New(), uuid.New(), now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}
	state.Interval = 16
	state.SuccessCount = 4
	state.FailureCount = 2
	state.NextReviewAt = now.AddDate(0, 0, 16)

	reset := resetState(state, now)

	if reset.Interval != 1 {
		t.Errorf("Expected interval 1, got %d", reset.Interval)
	}
	if reset.SuccessCount != 0 || reset.FailureCount != 0 {
		t.Errorf("Expected counts 0/0, got %d/%d", reset.SuccessCount, reset.FailureCount)
	}
	if !reset.NextReviewAt.Equal(now) {
		t.Errorf("Expected next review %v, got %v", now, reset.NextReviewAt)
	}
	if !reset.CreatedAt.Equal(state.CreatedAt) {
		t.Errorf("Reset should preserve creation time")
	}

	// Idempotence: reset(reset(s)) == reset(s) for the same instant.
	twice := resetState(reset, now)
	if *twice != *reset {
		t.Errorf("Reset is not idempotent: %+v vs %+v", twice, reset)
	}
}

func TestDueTimes(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	attempted := uuid.New()
	untouched := uuid.New()

	state, err := domain.NewScheduleState(userID, attempted, now.AddDate(0, 0, -3))
	if err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}
	state.NextReviewAt = now.AddDate(0, 0, 4)

	due := DueTimes(
		map[uuid.UUID]*domain.ScheduleState{attempted: state},
		[]uuid.UUID{attempted, untouched},
		now,
	)

	if len(due) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(due))
	}
	if !due[attempted].Equal(state.NextReviewAt) {
		t.Errorf("Expected attempted due %v, got %v", state.NextReviewAt, due[attempted])
	}
	if !due[untouched].Equal(now) {
		t.Errorf("Expected never-attempted problem due now, got %v", due[untouched])
	}
}
