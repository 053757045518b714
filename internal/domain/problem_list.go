package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Visibility of a problem list. The transition is one-way: once a list
// is public its name and visibility freeze and it cannot be deleted.
// Membership stays editable by the owner.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Common validation errors for ProblemList
var (
	ErrEmptyListOwnerID  = errors.New("problem list owner ID cannot be empty")
	ErrListNameEmpty     = errors.New("problem list name cannot be empty")
	ErrInvalidVisibility = errors.New("invalid problem list visibility")
)

// ProblemList is a named, owned collection of catalog problems. The
// member set itself is persisted separately and manipulated through the
// listops reconciler.
type ProblemList struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewProblemList creates an empty private list owned by the given user.
func NewProblemList(ownerID uuid.UUID, name string) (*ProblemList, error) {
	now := time.Now().UTC()
	list := &ProblemList{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       name,
		Visibility: VisibilityPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the ProblemList has valid data.
func (l *ProblemList) Validate() error {
	if l.OwnerID == uuid.Nil {
		return ErrEmptyListOwnerID
	}

	if l.Name == "" {
		return ErrListNameEmpty
	}

	if l.Visibility != VisibilityPrivate && l.Visibility != VisibilityPublic {
		return ErrInvalidVisibility
	}

	return nil
}

// IsPublic reports whether the list has been published.
func (l *ProblemList) IsPublic() bool {
	return l.Visibility == VisibilityPublic
}
