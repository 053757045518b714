package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Problem difficulty bounds. Difficulty is an ascending scale used for
// list ordering; 1 is the easiest.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Common validation errors for Problem
var (
	ErrProblemTitleEmpty      = errors.New("problem title cannot be empty")
	ErrProblemDifficultyRange = errors.New("problem difficulty out of range")
)

// Problem is a catalog entry a user can attempt.
type Problem struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Difficulty int       `json:"difficulty"`
	URL        string    `json:"url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProblem creates a catalog problem with a fresh ID.
func NewProblem(title string, difficulty int, url string) (*Problem, error) {
	now := time.Now().UTC()
	problem := &Problem{
		ID:         uuid.New(),
		Title:      title,
		Difficulty: difficulty,
		URL:        url,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := problem.Validate(); err != nil {
		return nil, err
	}

	return problem, nil
}

// Validate checks if the Problem has valid data.
func (p *Problem) Validate() error {
	if p.Title == "" {
		return ErrProblemTitleEmpty
	}

	if p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty {
		return ErrProblemDifficultyRange
	}

	return nil
}
