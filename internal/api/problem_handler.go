package api

import (
	"net/http"

	"github.com/drillhq/drill-api/internal/api/shared"
	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/service/review"
	"github.com/drillhq/drill-api/internal/store"
)

// ProblemHandler handles catalog problem requests and the per-problem
// scheduling operations (submit, reset).
type ProblemHandler struct {
	problemStore  store.ProblemStore
	reviewService review.ReviewService
}

// NewProblemHandler creates a new ProblemHandler with the given dependencies.
func NewProblemHandler(
	problemStore store.ProblemStore,
	reviewService review.ReviewService,
) *ProblemHandler {
	return &ProblemHandler{
		problemStore:  problemStore,
		reviewService: reviewService,
	}
}

// Create handles POST /api/problems.
func (h *ProblemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProblemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	problem, err := domain.NewProblem(req.Title, req.Difficulty, req.URL)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.problemStore.Create(r.Context(), problem); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, problem)
}

// Get handles GET /api/problems/{id}.
func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	problem, err := h.problemStore.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, problem)
}

// Submit handles POST /api/problems/{id}/submit: a pass/fail outcome
// for the authenticated user.
func (h *ProblemHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, problemID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitOutcomeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Zero means "use the user's configured multiplier".
	multiplier := 0.0
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}

	state, err := h.reviewService.SubmitOutcome(r.Context(), userID, problemID, *req.Passed, multiplier)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewScheduleStateResponse(state))
}

// Reset handles POST /api/problems/{id}/reset.
func (h *ProblemHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, problemID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	state, err := h.reviewService.ResetSchedule(r.Context(), userID, problemID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewScheduleStateResponse(state))
}
