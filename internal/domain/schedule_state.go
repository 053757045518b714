package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ScheduleState
var (
	ErrEmptyStateUserID    = errors.New("schedule state user ID cannot be empty")
	ErrEmptyStateProblemID = errors.New("schedule state problem ID cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be at least 1 day")
	ErrNegativeCount       = errors.New("outcome counters cannot be negative")
)

// ScheduleState is the per-user-per-problem spaced repetition record.
// The interval starts at one day and the state is due immediately on
// creation, so problems never attempted sort as most urgent.
type ScheduleState struct {
	UserID       uuid.UUID `json:"user_id"`
	ProblemID    uuid.UUID `json:"problem_id"`
	Interval     int       `json:"interval"`      // Days until next review after a pass
	NextReviewAt time.Time `json:"next_review_at"`
	SuccessCount int       `json:"success_count"` // Lifetime passing submissions
	FailureCount int       `json:"failure_count"` // Lifetime failing submissions
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewScheduleState creates the initial state for a user and problem:
// one-day interval, zero counters, due at the given instant.
func NewScheduleState(userID, problemID uuid.UUID, now time.Time) (*ScheduleState, error) {
	state := &ScheduleState{
		UserID:       userID,
		ProblemID:    problemID,
		Interval:     1,
		NextReviewAt: now,
		SuccessCount: 0,
		FailureCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the ScheduleState has valid data.
func (s *ScheduleState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}

	if s.ProblemID == uuid.Nil {
		return ErrEmptyStateProblemID
	}

	if s.Interval < 1 {
		return ErrInvalidInterval
	}

	if s.SuccessCount < 0 || s.FailureCount < 0 {
		return ErrNegativeCount
	}

	return nil
}

// Note: state transitions (apply outcome, reset) live in the schedule
// package and return new instances rather than modifying existing ones.
