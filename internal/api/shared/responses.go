package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Meta carries the pagination fields list endpoints attach to the envelope.
// From and To are nil (rendered as JSON null) when the page is empty.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// successBody is the envelope for successful responses. Data is always
// present, null included (e.g. logout and delete return data: null).
type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// errorBody is the envelope for failed responses. Errors is a nullable map
// of field names to messages; it is null unless the failure is field-scoped.
type errorBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// writeJSON writes a JSON response with the given status code and body.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes the success envelope with the given data.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	writeJSON(w, status, successBody{Success: true, Message: message, Data: data})
}

// RespondList writes the success envelope with pagination meta attached.
func RespondList(w http.ResponseWriter, r *http.Request, message string, data any, meta *Meta) {
	writeJSON(w, http.StatusOK, successBody{Success: true, Message: message, Data: data, Meta: meta})
}

// RespondError writes the failure envelope. fieldErrors may be nil for
// failures that carry no field-scoped messages.
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors map[string][]string) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	writeJSON(w, status, errorBody{Success: false, Message: message, Errors: fieldErrors})
}
