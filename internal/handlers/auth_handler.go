package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"talentplay/internal/auth"
	"talentplay/internal/config"
	"talentplay/pkg/validator"
)

// AuthHandler handles panel authentication
type AuthHandler struct {
	authService *auth.Service
	admin       *config.AdminConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, admin *config.AdminConfig) *AuthHandler {
	return &AuthHandler{authService: authService, admin: admin}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login authenticates the panel admin and issues a JWT
// @Summary Admin login
// @Description Verifies credentials against the configured admin account and returns a bearer token.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body handlers.loginRequest true "Credentials"
// @Success 200 {object} handlers.loginResponse
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email != h.admin.Email {
		respondWithError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
		return
	}
	if err := h.authService.VerifyPassword(h.admin.PasswordHash, req.Password); err != nil {
		respondWithError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
		return
	}

	token, expiresAt, err := h.authService.GenerateToken(req.Email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}
