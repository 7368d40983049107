package handlers

import (
	"net/http"

	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type DashboardHandler struct {
	Service  *services.DashboardService
	Activity *services.ActivityService
}

func NewDashboardHandler(s *services.DashboardService, activity *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{Service: s, Activity: activity}
}

// Employee summarises the caller's own day
func (h *DashboardHandler) Employee(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.Employee(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.Admin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, out)
}

// ActivityLogs lists the audit trail, newest first
func (h *DashboardHandler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r)
	logs, err := h.Activity.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
