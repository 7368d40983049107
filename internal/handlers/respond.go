package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/middleware"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var kindStatus = map[services.Kind]int{
	services.KindNotFound:     http.StatusNotFound,
	services.KindConflict:     http.StatusBadRequest,
	services.KindInvalid:      http.StatusBadRequest,
	services.KindForbidden:    http.StatusForbidden,
	services.KindUnauthorized: http.StatusUnauthorized,
}

// writeError maps service errors to status codes. Anything unexpected is
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrPayslipStorageDisabled) {
		utils.Detail(w, http.StatusServiceUnavailable, "Payslip storage is not configured")
		return
	}

	var se *services.Error
	if errors.As(err, &se) {
		status, ok := kindStatus[se.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		utils.Detail(w, status, se.Message)
		return
	}

	zap.L().Error("request failed",
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	utils.Detail(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Detail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses a numeric route variable
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		utils.Detail(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func paging(r *http.Request) (int, int) {
	return queryInt(r, "skip", 0), queryInt(r, "limit", 100)
}

// actor reads the authenticated caller. Routes using it sit behind the auth
// middleware, so a missing actor means a wiring bug.
func actor(r *http.Request) auth.Actor {
	a, _ := middleware.ActorFromContext(r.Context())
	return a
}
