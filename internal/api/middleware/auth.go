package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// TokenChecker verifies a bearer token string end to end (signature,
// expiry, revocation) and returns its claims. Implemented by
// *auth.Service.
type TokenChecker interface {
	CheckToken(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// AuthMiddleware resolves the bearer token in the Authorization header to
// an authenticated user before the handlers run.
type AuthMiddleware struct {
	checker TokenChecker
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(checker TokenChecker) *AuthMiddleware {
	return &AuthMiddleware{checker: checker}
}

// Authenticate validates the bearer token and adds the user ID and token ID
// to the request context for authorized requests. Every failure mode is a
// 401; the envelope never distinguishes a revoked token from a forged one
// beyond its message.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondError(w, r, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondError(w, r, http.StatusUnauthorized, "Invalid authorization format", nil)
			return
		}

		claims, err := m.checker.CheckToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondError(w, r, http.StatusUnauthorized, "Token expired", nil)
			case errors.Is(err, auth.ErrRevokedToken):
				shared.RespondError(w, r, http.StatusUnauthorized, "Token revoked", nil)
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondError(w, r, http.StatusUnauthorized, "Invalid token", nil)
			default:
				logger.FromContext(r.Context()).Error("failed to validate token", "error", err)
				shared.RespondError(w, r, http.StatusInternalServerError, "Authentication error", nil)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, shared.TokenIDContextKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetTokenID extracts the authenticating token's ID from the request context.
func GetTokenID(r *http.Request) (uuid.UUID, bool) {
	tokenID, ok := r.Context().Value(shared.TokenIDContextKey).(uuid.UUID)
	return tokenID, ok
}
