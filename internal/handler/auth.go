package handler

import (
	"log/slog"
	"net/http"

	"journal/internal/domain/services"
	"journal/internal/httputil"
)

// AuthHandler handles sign-in requests
type AuthHandler struct {
	signIn services.SignInService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(signIn services.SignInService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{signIn: signIn, logger: logger}
}

// Login exchanges email and password for an access token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.SignInRequest
	if !parseBody(w, r, &req) {
		return
	}

	cred, err := h.signIn.SignIn(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cred)
}
