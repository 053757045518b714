package api

import (
	"time"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/domain/listops"
	"github.com/drillhq/drill-api/internal/service/list_curation"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserResponse is the client-facing view of a user account.
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	IntervalMultiplier float64   `json:"interval_multiplier"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		IntervalMultiplier: user.IntervalMultiplier,
		CreatedAt:          user.CreatedAt,
	}
}

// UpdateUserRequest defines the payload for the user settings endpoint.
type UpdateUserRequest struct {
	IntervalMultiplier float64 `json:"interval_multiplier" validate:"required,gt=0"`
}

// CreateProblemRequest defines the payload for adding a catalog problem.
type CreateProblemRequest struct {
	Title      string `json:"title"      validate:"required,max=200"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	URL        string `json:"url"        validate:"omitempty,url"`
}

// SubmitOutcomeRequest defines the payload for a pass/fail submission.
// The multiplier is optional; when omitted the user's configured one
// applies.
type SubmitOutcomeRequest struct {
	Passed     *bool    `json:"passed"     validate:"required"`
	Multiplier *float64 `json:"multiplier" validate:"omitempty,gt=0"`
}

// ScheduleStateResponse is the client-facing view of a schedule state.
type ScheduleStateResponse struct {
	ProblemID    uuid.UUID `json:"problem_id"`
	Interval     int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
}

// NewScheduleStateResponse converts a schedule state to its API
// representation. The user ID is implicit in the authenticated request.
func NewScheduleStateResponse(state *domain.ScheduleState) *ScheduleStateResponse {
	return &ScheduleStateResponse{
		ProblemID:    state.ProblemID,
		Interval:     state.Interval,
		NextReviewAt: state.NextReviewAt,
		SuccessCount: state.SuccessCount,
		FailureCount: state.FailureCount,
	}
}

// DueRequest defines the payload for the due-times query.
type DueRequest struct {
	ProblemIDs []uuid.UUID `json:"problem_ids" validate:"required"`
}

// DueResponse maps each requested problem to the instant it is due.
type DueResponse struct {
	Due map[uuid.UUID]time.Time `json:"due"`
}

// CreateListRequest defines the payload for creating a problem list.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// RenameListRequest defines the payload for renaming a problem list.
type RenameListRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CopyListRequest defines the payload for copying a problem list. An
// empty name derives one from the source list.
type CopyListRequest struct {
	Name string `json:"name" validate:"omitempty,max=120"`
}

// ReconcileListRequest defines the payload for a membership batch.
type ReconcileListRequest struct {
	Instructions []listops.Instruction `json:"instructions" validate:"required,min=1,dive"`
}

// ListViewResponse is the sorted read view of a list.
type ListViewResponse struct {
	List    *domain.ProblemList       `json:"list"`
	Entries []list_curation.ListEntry `json:"entries"`
}
