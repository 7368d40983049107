package handlers

import (
	"net/http"

	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func NewEmployeeHandler(s *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r)
	profiles, err := h.Service.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, profiles)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, profile)
}

func (h *EmployeeHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.Me(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_profile_id")
	if !ok {
		return
	}
	profile, err := h.Service.Get(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_profile_id")
	if !ok {
		return
	}
	var req models.UpdateEmployeeProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := h.Service.Update(r.Context(), actor(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}
