package schedule

import (
	"math"
	"time"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// nextInterval determines the interval in days after a submission.
//
// On a pass the current interval is scaled by the user's multiplier and
// rounded to the nearest day, never dropping below one day. A state that
// has never seen a passing outcome carries the initial one-day interval,
// so the first pass yields round(multiplier). On a fail the interval
// collapses back to one day.
func nextInterval(currentInterval int, passed bool, multiplier float64) int {
	if !passed {
		return 1
	}

	interval := int(math.Round(float64(currentInterval) * multiplier))
	if interval < 1 {
		interval = 1
	}

	return interval
}

// nextReviewDate determines when the problem is next due. A pass pushes
// the due instant forward by the new interval; a fail makes the problem
// due immediately.
func nextReviewDate(interval int, passed bool, now time.Time) time.Time {
	if !passed {
		return now
	}

	return now.AddDate(0, 0, interval)
}

// applyOutcome creates a new ScheduleState reflecting a submission.
//
// The returned value is a complete copy of the input; the original is
// never modified. The transition is a pure function of
// (state, passed, multiplier, now), which keeps it deterministic under
// an injected clock.
func applyOutcome(
	state *domain.ScheduleState,
	passed bool,
	multiplier float64,
	now time.Time,
) *domain.ScheduleState {
	newState := &domain.ScheduleState{
		UserID:       state.UserID,
		ProblemID:    state.ProblemID,
		Interval:     state.Interval,
		NextReviewAt: state.NextReviewAt,
		SuccessCount: state.SuccessCount,
		FailureCount: state.FailureCount,
		CreatedAt:    state.CreatedAt,
		UpdatedAt:    state.UpdatedAt,
	}

	newState.Interval = nextInterval(state.Interval, passed, multiplier)
	newState.NextReviewAt = nextReviewDate(newState.Interval, passed, now)

	if passed {
		newState.SuccessCount++
	} else {
		newState.FailureCount++
	}

	newState.UpdatedAt = now

	return newState
}

// resetState creates a new ScheduleState back at its initial values:
// one-day interval, zero counters, due now. Applying it twice with the
// same instant yields the same state as applying it once.
func resetState(state *domain.ScheduleState, now time.Time) *domain.ScheduleState {
	return &domain.ScheduleState{
		UserID:       state.UserID,
		ProblemID:    state.ProblemID,
		Interval:     1,
		NextReviewAt: now,
		SuccessCount: 0,
		FailureCount: 0,
		CreatedAt:    state.CreatedAt,
		UpdatedAt:    now,
	}
}

// DueTimes maps each requested problem to its due instant. Problems
// without an existing state map to the fallback instant, so problems
// never attempted sort as most urgent.
func DueTimes(
	states map[uuid.UUID]*domain.ScheduleState,
	problemIDs []uuid.UUID,
	fallbackNow time.Time,
) map[uuid.UUID]time.Time {
	due := make(map[uuid.UUID]time.Time, len(problemIDs))
	for _, id := range problemIDs {
		if state, ok := states[id]; ok {
			due[id] = state.NextReviewAt
		} else {
			due[id] = fallbackNow
		}
	}

	return due
}
