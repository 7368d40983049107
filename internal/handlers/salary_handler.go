package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type SalaryHandler struct {
	Service *services.SalaryService
}

func NewSalaryHandler(s *services.SalaryService) *SalaryHandler {
	return &SalaryHandler{Service: s}
}

func (h *SalaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSalaryStructureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.Service.Create(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, s)
}

func (h *SalaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "salary_id")
	if !ok {
		return
	}
	var req models.UpdateSalaryStructureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.Service.Update(r.Context(), actor(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, s)
}

func (h *SalaryHandler) Mine(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Mine(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, s)
}

func (h *SalaryHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r)
	rows, err := h.Service.Payroll(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// Slip returns the computed payslip as JSON, or as a PDF download when
// format=pdf is given.
func (h *SalaryHandler) Slip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_profile_id")
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		pdf, err := h.Service.SlipPDF(r.Context(), actor(r), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%d.pdf"`, id))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
		return
	}

	slip, _, err := h.Service.Slip(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, slip)
}

func (h *SalaryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_profile_id")
	if !ok {
		return
	}
	archive, err := h.Service.Archive(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, archive)
}
