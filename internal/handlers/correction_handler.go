package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type CorrectionHandler struct {
	Service *services.CorrectionService
}

func NewCorrectionHandler(s *services.CorrectionService) *CorrectionHandler {
	return &CorrectionHandler{Service: s}
}

func (h *CorrectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCorrectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cr, err := h.Service.Create(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, cr)
}

func (h *CorrectionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Pending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *CorrectionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Mine(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *CorrectionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	handleReview(w, r, "request_id", h.Service.Approve)
}

func (h *CorrectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	handleReview(w, r, "request_id", h.Service.Reject)
}

// handleReview decodes the optional reviewer comments and applies fn to the
// id taken from the route.
func handleReview[T any](w http.ResponseWriter, r *http.Request, idVar string, fn func(context.Context, auth.Actor, int, string) (T, error)) {
	id, ok := pathID(w, r, idVar)
	if !ok {
		return
	}
	// The body is optional; an empty one means no comments.
	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, err := fn(r.Context(), actor(r), id, req.ReviewerComments)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}
