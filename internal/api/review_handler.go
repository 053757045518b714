package api

import (
	"net/http"

	"github.com/drillhq/drill-api/internal/api/shared"
	"github.com/drillhq/drill-api/internal/service/review"
)

// ReviewHandler handles cross-problem scheduling queries.
type ReviewHandler struct {
	reviewService review.ReviewService
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService review.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Due handles POST /api/reviews/due: the due instant for each requested
// problem, with never-attempted problems due immediately.
func (h *ReviewHandler) Due(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DueRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	due, err := h.reviewService.GetDueMap(r.Context(), userID, req.ProblemIDs)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueResponse{Due: due})
}
