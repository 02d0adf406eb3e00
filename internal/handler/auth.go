package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/service"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user"`
}

// HandleRegister creates an account.
//
// POST /api/auth/register → 201 {success, user:{id, username}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		Success: true,
		User:    user,
	})
}

// HandleLogin re-authenticates the caller. No session or token is issued.
//
// POST /api/auth/login → 200 {success, message, user}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "login successful",
		User:    user,
	})
}
