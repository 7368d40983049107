package handlers

import (
	"net/http"
	"time"

	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/internal/timeutil"
	"hrms-backend/pkg/utils"
)

type AttendanceHandler struct {
	Service *services.AttendanceService
}

func NewAttendanceHandler(s *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: s}
}

func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.CheckIn(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, record)
}

func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.CheckOut(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

// dateParam reads an optional YYYY-MM-DD query value. The zero time means
// the parameter was absent.
func dateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, true
	}
	d, err := timeutil.ParseDate(v)
	if err != nil {
		utils.Detail(w, http.StatusBadRequest, name+" must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return d, true
}

func (h *AttendanceHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day, ok := dateParam(w, r, "day")
	if !ok {
		return
	}
	records, err := h.Service.Daily(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	day, ok := dateParam(w, r, "day_in_week")
	if !ok {
		return
	}
	records, err := h.Service.Weekly(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) Me(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r)
	records, err := h.Service.Me(r.Context(), actor(r), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) All(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r)
	filter := models.AttendanceFilter{
		EmployeeProfileID: queryInt(r, "employee_profile_id", 0),
		Skip:              skip,
		Limit:             limit,
	}
	records, err := h.Service.All(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) Manual(w http.ResponseWriter, r *http.Request) {
	var req models.ManualAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	record, err := h.Service.Manual(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

func (h *AttendanceHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_profile_id")
	if !ok {
		return
	}
	skip, limit := paging(r)
	records, err := h.Service.ByEmployee(r.Context(), actor(r), id, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}
