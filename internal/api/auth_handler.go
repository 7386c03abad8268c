package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// AuthService is the surface of the auth service the handler needs.
// Implemented by *auth.Service.
type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth     AuthService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		auth:     authService,
		validate: newValidator(),
	}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Validation error", buildFieldErrors(err))
		return
	}

	user, token, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, "Registered successfully.", AuthData{
		Token: token,
		User:  user,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Validation error", buildFieldErrors(err))
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Login successful.", AuthData{
		Token: token,
		User:  user,
	})
}

// Logout handles POST /api/logout. Revokes the token that authenticated
// this request. A request that somehow reaches here without a token in
// context is still a success: logout is a no-op without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := r.Context().Value(shared.TokenIDContextKey).(uuid.UUID)
	if ok && tokenID != uuid.Nil {
		if err := h.auth.Logout(r.Context(), tokenID); err != nil {
			RespondWithServiceError(w, r, err)
			return
		}
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Logged out successfully.", nil)
}
