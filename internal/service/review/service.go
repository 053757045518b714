// Package review exposes the submission-facing operations of the
// scheduling engine: applying pass/fail outcomes, resetting a schedule,
// and computing due maps. Each mutating operation is one atomic
// read-modify-write against the schedule store.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drillhq/drill-api/internal/domain"

	"github.com/google/uuid"
)

// ReviewService provides spaced-repetition scheduling operations.
type ReviewService interface {
	// SubmitOutcome records a pass/fail submission for a problem and
	// returns the updated schedule state. A state is created lazily on
	// the first submission for a (user, problem) pair.
	//
	// A positive multiplier is used as given; zero means "use the
	// user's configured multiplier"; a negative value yields
	// ErrInvalidMultiplier. Concurrent submissions for the same
	// (user, problem) key serialize on the state's row lock.
	SubmitOutcome(
		ctx context.Context,
		userID uuid.UUID,
		problemID uuid.UUID,
		passed bool,
		multiplier float64,
	) (*domain.ScheduleState, error)

	// ResetSchedule returns the schedule state for a problem to its
	// initial values: one-day interval, zero counters, due now.
	// Resetting a never-attempted problem creates the initial state,
	// so the operation is idempotent.
	ResetSchedule(
		ctx context.Context,
		userID uuid.UUID,
		problemID uuid.UUID,
	) (*domain.ScheduleState, error)

	// GetDueMap maps each requested problem to the instant it is due
	// for the user. Problems never attempted map to now, so they sort
	// as most urgent.
	GetDueMap(
		ctx context.Context,
		userID uuid.UUID,
		problemIDs []uuid.UUID,
	) (map[uuid.UUID]time.Time, error)
}

// Common error types for ReviewService
var (
	// ErrProblemNotFound indicates that the problem does not exist.
	ErrProblemNotFound = errors.New("problem not found")

	// ErrInvalidMultiplier indicates a non-positive explicit multiplier.
	ErrInvalidMultiplier = errors.New("multiplier must be positive")
)

// ServiceError wraps errors from the review service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
