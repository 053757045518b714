// Package list_curation exposes the lifecycle and membership operations
// of problem lists: create, rename, publish, copy, delete, batch
// membership reconciliation, and sorted read views.
package list_curation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/domain/listops"

	"github.com/google/uuid"
)

// SortKey selects the ordering of a list view.
type SortKey string

const (
	// SortByDifficulty orders entries by ascending difficulty, then ID.
	SortByDifficulty SortKey = "difficulty"

	// SortByNextReview orders entries by the viewer's next review time,
	// soonest first, then ID. Never-attempted problems sort first.
	SortByNextReview SortKey = "next_review"
)

// ParseSortKey maps a query-string value to a SortKey. An empty value
// defaults to difficulty ordering.
func ParseSortKey(value string) (SortKey, error) {
	switch value {
	case "", string(SortByDifficulty):
		return SortByDifficulty, nil
	case string(SortByNextReview):
		return SortByNextReview, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// ListEntry is one problem in a list view, annotated with the viewer's
// due time for it.
type ListEntry struct {
	Problem      *domain.Problem `json:"problem"`
	NextReviewAt time.Time       `json:"next_review_at"`
}

// ListView is a list plus its member problems in presentation order.
type ListView struct {
	List    *domain.ProblemList `json:"list"`
	Entries []ListEntry         `json:"entries"`
}

// ListCurationService manages problem lists and their membership.
type ListCurationService interface {
	// CreateList creates an empty private list owned by the user.
	CreateList(ctx context.Context, ownerID uuid.UUID, name string) (*domain.ProblemList, error)

	// RenameList changes a private list's name. Returns ErrListPublic
	// once the list has been published; published names are frozen.
	RenameList(ctx context.Context, userID, listID uuid.UUID, name string) (*domain.ProblemList, error)

	// PublishList makes a list public. The transition is one-way and
	// idempotent; publishing an already-public list is a no-op.
	PublishList(ctx context.Context, userID, listID uuid.UUID) (*domain.ProblemList, error)

	// DeleteList removes a private list and its member set. Returns
	// ErrListPublic for published lists; those cannot be deleted.
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error

	// CopyList creates a new private list owned by the user, seeded with
	// the source list's members. The source must be owned by the user or
	// public. An empty name derives one from the source.
	CopyList(ctx context.Context, userID, sourceID uuid.UUID, name string) (*domain.ProblemList, error)

	// ReconcileList applies an ordered batch of add/remove instructions
	// to the list's member set and persists the result as a single
	// write. Instructions that cannot apply are rejected individually in
	// the returned report; the batch itself never fails part-way.
	// Membership stays editable by the owner after publication.
	ReconcileList(
		ctx context.Context,
		userID, listID uuid.UUID,
		instructions []listops.Instruction,
	) (listops.Report, error)

	// GetListView returns the list and its members ordered by the given
	// sort key. The viewer must own the list or the list must be public.
	GetListView(ctx context.Context, userID, listID uuid.UUID, sort SortKey) (*ListView, error)
}

// Common error types for ListCurationService
var (
	// ErrListNotFound indicates that the list does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrNotOwner indicates the user may not act on this list.
	ErrNotOwner = errors.New("user does not own this list")

	// ErrListPublic indicates an operation that is frozen after
	// publication (rename, delete).
	ErrListPublic = errors.New("list is public and cannot be modified this way")

	// ErrInvalidSortKey indicates an unrecognized sort parameter.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// ServiceError wraps errors from the list curation service with
// operation context.
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
