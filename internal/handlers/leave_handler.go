package handlers

import (
	"net/http"

	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type LeaveHandler struct {
	Service *services.LeaveService
}

func NewLeaveHandler(s *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{Service: s}
}

func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lr, err := h.Service.Apply(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, lr)
}

func (h *LeaveHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Mine(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *LeaveHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Pending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	handleReview(w, r, "leave_id", h.Service.Approve)
}

func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	handleReview(w, r, "leave_id", h.Service.Reject)
}

func (h *LeaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "leave_id")
	if !ok {
		return
	}
	lr, err := h.Service.Cancel(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, lr)
}

// Balance returns the current year's balances. employee_profile_id is
// optional and defaults to the caller's own profile.
func (h *LeaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Service.Balances(r.Context(), actor(r), queryInt(r, "employee_profile_id", 0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, balances)
}

func (h *LeaveHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req models.AllocateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	balance, err := h.Service.Allocate(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, balance)
}
