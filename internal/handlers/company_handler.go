package handlers

import (
	"net/http"

	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: s}
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	company, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, company)
}
