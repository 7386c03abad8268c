// Package middleware contains the HTTP middleware applied around the API
// handlers: bearer-token authentication and trace-ID propagation.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that assigns every request a trace
// ID and stores a logger carrying it in the request context, so downstream
// log lines and error responses correlate.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			reqLog := log.With(
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.WithContext(ctx, reqLog)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
