// Package schedule implements the review scheduling engine: pure
// transitions over domain.ScheduleState values driven by pass/fail
// submissions and a per-user interval multiplier. Persistence is a
// separate, explicit step owned by the calling service.
package schedule

import (
	"errors"
	"time"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilState          = errors.New("schedule state cannot be nil")
	ErrInvalidMultiplier = errors.New("multiplier must be positive")
)

// Service defines the interface for scheduling engine operations.
type Service interface {
	// ApplyOutcome computes a new state from a pass/fail submission.
	ApplyOutcome(
		state *domain.ScheduleState,
		passed bool,
		multiplier float64,
		now time.Time,
	) (*domain.ScheduleState, error)

	// Reset returns the state to its initial values.
	Reset(state *domain.ScheduleState, now time.Time) (*domain.ScheduleState, error)

	// DueTimes maps problems to due instants; missing states fall back
	// to the given instant.
	DueTimes(
		states map[uuid.UUID]*domain.ScheduleState,
		problemIDs []uuid.UUID,
		fallbackNow time.Time,
	) map[uuid.UUID]time.Time
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewService creates the scheduling engine service.
func NewService() Service {
	return &defaultService{}
}

// ApplyOutcome implements the Service interface for submission transitions.
func (s *defaultService) ApplyOutcome(
	state *domain.ScheduleState,
	passed bool,
	multiplier float64,
	now time.Time,
) (*domain.ScheduleState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if multiplier <= 0 {
		return nil, ErrInvalidMultiplier
	}

	return applyOutcome(state, passed, multiplier, now), nil
}

// Reset implements the Service interface for reset transitions.
func (s *defaultService) Reset(
	state *domain.ScheduleState,
	now time.Time,
) (*domain.ScheduleState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	return resetState(state, now), nil
}

// DueTimes implements the Service interface.
func (s *defaultService) DueTimes(
	states map[uuid.UUID]*domain.ScheduleState,
	problemIDs []uuid.UUID,
	fallbackNow time.Time,
) map[uuid.UUID]time.Time {
	return DueTimes(states, problemIDs, fallbackNow)
}
