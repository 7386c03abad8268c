package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// DecodeJSON decodes the request body into dst, rejecting unknown trailing
// content.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireUserAndTaskID extracts the authenticated user ID and the {id} path
// parameter, writing the error response itself when either is missing.
// Returns false when a response has already been written.
func requireUserAndTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, "Unauthenticated", nil)
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithServiceError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, taskID, true
}

// parseTaskFilter reads the listing query parameters into a store filter.
// withDates controls whether from_date/to_date are honored (the basic
// /tasks route ignores them; /tasks/filter adds them). Invalid values come
// back as field errors for a 400 response.
func parseTaskFilter(r *http.Request, withDates bool) (store.TaskFilter, map[string][]string) {
	filter := store.TaskFilter{Page: 1, PerPage: store.DefaultPerPage}
	fieldErrors := make(map[string][]string)
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			fieldErrors["status"] = append(fieldErrors["status"],
				"Status must be one of: pending, in-progress, completed.")
		} else {
			filter.Status = &status
		}
	}

	if raw := q.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrors["per_page"] = append(fieldErrors["per_page"], "Per page must be a number.")
		case perPage < 1:
			fieldErrors["per_page"] = append(fieldErrors["per_page"], "Per page must be at least 1.")
		case perPage > store.MaxPerPage:
			fieldErrors["per_page"] = append(fieldErrors["per_page"], "Per page cannot exceed 100.")
		default:
			filter.PerPage = perPage
		}
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fieldErrors["page"] = append(fieldErrors["page"], "Page must be a positive number.")
		} else {
			filter.Page = page
		}
	}

	if withDates {
		if raw := q.Get("from_date"); raw != "" {
			d, err := domain.ParseDate(raw)
			if err != nil {
				fieldErrors["from_date"] = append(fieldErrors["from_date"],
					"From date must be in format YYYY-MM-DD.")
			} else {
				filter.DueFrom = &d
			}
		}
		if raw := q.Get("to_date"); raw != "" {
			d, err := domain.ParseDate(raw)
			if err != nil {
				fieldErrors["to_date"] = append(fieldErrors["to_date"],
					"To date must be in format YYYY-MM-DD.")
			} else {
				filter.DueTo = &d
			}
		}
	}

	if len(fieldErrors) == 0 {
		fieldErrors = nil
	}
	return filter, fieldErrors
}

// metaFromPage converts store pagination bookkeeping into the envelope's
// meta object.
func metaFromPage(page *store.TaskPage) *shared.Meta {
	return &shared.Meta{
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
		From:        page.From,
		To:          page.To,
	}
}
