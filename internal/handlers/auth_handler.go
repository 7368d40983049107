package handlers

import (
	"net/http"

	"hrms-backend/internal/middleware"
	"hrms-backend/internal/models"
	"hrms-backend/internal/services"
	"hrms-backend/pkg/utils"
)

type AuthHandler struct {
	Service     *services.AuthService
	TOTPService *services.TOTPService
}

func NewAuthHandler(s *services.AuthService, totp *services.TOTPService) *AuthHandler {
	return &AuthHandler{Service: s, TOTPService: totp}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

// Login takes OAuth2 password-style form fields: username, password and an
// optional totp_code.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.Detail(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	req := models.LoginRequest{
		Email:    r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		TOTPCode: r.PostForm.Get("totp_code"),
	}
	if req.Email == "" || req.Password == "" {
		utils.Detail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, token)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Me(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, exp := middleware.TokenFromContext(r.Context())
	if err := h.Service.Logout(r.Context(), actor(r), tokenID, exp); err != nil {
		writeError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Successfully logged out.")
}

// SetupTOTP returns the secret and QR code for an authenticator app
func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.TOTPService.Setup(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.TOTPService.Enable(r.Context(), actor(r), req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Two-factor authentication enabled")
}

func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.TOTPService.Disable(r.Context(), actor(r), req.Password, req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Two-factor authentication disabled")
}
