package api

import (
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError renders a service-layer error through the
// envelope, choosing the status, a safe user-facing message, and field
// errors when the failure is field-scoped. Internal error text never
// reaches the client on the 500 path; it is logged server-side instead.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		shared.RespondError(w, r, status, "Validation error",
			map[string][]string{validationErr.Field: {validationErr.Message}})
		return
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("unexpected error handling request", "error", err)
		shared.RespondError(w, r, status, "Something went wrong", nil)
		return
	}

	shared.RespondError(w, r, status, safeErrorMessage(err), nil)
}

// safeErrorMessage returns a sanitized, user-friendly message for known
// error kinds.
func safeErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrRevokedToken):
		return "Invalid token"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case store.IsNotFoundError(err):
		return "Resource not found"
	case errors.Is(err, store.ErrEmailExists):
		return "This email is already registered."
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"
	default:
		return "Something went wrong"
	}
}
