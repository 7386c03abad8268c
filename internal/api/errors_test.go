package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", domain.NewValidationError("title", "is required", domain.ErrValidation), http.StatusBadRequest},
		{"wrapped validation sentinel", fmt.Errorf("create: %w", domain.ErrValidation), http.StatusBadRequest},
		{"duplicate email", store.ErrEmailExists, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked token", auth.ErrRevokedToken, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestRespondWithServiceError(t *testing.T) {
	t.Run("field-scoped validation error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)

		err := domain.NewValidationError("due_date", "Due date cannot be in the past", domain.ErrDueDateInPast)
		RespondWithServiceError(rec, req, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Validation error", env.Message)
		assert.Equal(t, []string{"Due date cannot be in the past"}, env.Errors["due_date"])
	})

	t.Run("internal errors never leak their text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)

		RespondWithServiceError(rec, req, errors.New("pq: connection refused on 10.0.0.3"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Something went wrong", env.Message)
		assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	})

	t.Run("known errors get their safe message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)

		RespondWithServiceError(rec, req, fmt.Errorf("login: %w", auth.ErrInvalidCredentials))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid email or password.", env.Message)
	})
}
