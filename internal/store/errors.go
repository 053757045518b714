package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants below wrap it so callers can
	// match either the generic or the specific error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when the atomic read-modify-write bracket
	// fails due to a serialization failure or deadlock. The operation is
	// safe to retry from a fresh read, since every logical operation
	// performs its single write at the end.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProblemNotFound indicates that the requested problem does not exist.
	ErrProblemNotFound = fmt.Errorf("%w: problem", ErrNotFound)

	// ErrScheduleStateNotFound indicates that no schedule state exists
	// for the requested (user, problem) pair.
	ErrScheduleStateNotFound = fmt.Errorf("%w: schedule state", ErrNotFound)

	// ErrListNotFound indicates that the requested problem list does not exist.
	ErrListNotFound = fmt.Errorf("%w: problem list", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryableError reports whether the operation can be retried from a
// fresh read. Serialization conflicts are the only retryable class; the
// caller must rerun the whole operation, never resume a partial one.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrConflict)
}
