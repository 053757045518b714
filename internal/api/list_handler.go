package api

import (
	"net/http"

	"github.com/drillhq/drill-api/internal/api/shared"
	"github.com/drillhq/drill-api/internal/service/list_curation"
)

// ListHandler handles problem list lifecycle and membership requests.
type ListHandler struct {
	listService list_curation.ListCurationService
}

// NewListHandler creates a new ListHandler with the given dependencies.
func NewListHandler(listService list_curation.ListCurationService) *ListHandler {
	return &ListHandler{listService: listService}
}

// Create handles POST /api/lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.listService.CreateList(r.Context(), userID, req.Name)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, list)
}

// Get handles GET /api/lists/{id}?sort=difficulty|next_review.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	sortKey, err := list_curation.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sort key")
		return
	}

	view, err := h.listService.GetListView(r.Context(), userID, listID, sortKey)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListViewResponse{
		List:    view.List,
		Entries: view.Entries,
	})
}

// Rename handles PATCH /api/lists/{id}.
func (h *ListHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req RenameListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.listService.RenameList(r.Context(), userID, listID, req.Name)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// Publish handles POST /api/lists/{id}/publish.
func (h *ListHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.listService.PublishList(r.Context(), userID, listID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// Delete handles DELETE /api/lists/{id}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.listService.DeleteList(r.Context(), userID, listID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Copy handles POST /api/lists/{id}/copy.
func (h *ListHandler) Copy(w http.ResponseWriter, r *http.Request) {
	userID, sourceID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CopyListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.listService.CopyList(r.Context(), userID, sourceID, req.Name)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, list)
}

// Reconcile handles POST /api/lists/{id}/problems: an ordered batch of
// add/remove instructions applied atomically, with per-instruction
// rejections reported back.
func (h *ListHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReconcileListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.listService.ReconcileList(r.Context(), userID, listID, req.Instructions)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
