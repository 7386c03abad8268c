package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/register", app.authHandler.Register)
		r.Post("/login", app.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", app.authHandler.Logout)

			r.Get("/tasks", app.taskHandler.List)
			r.Get("/tasks/filter", app.taskHandler.ListFiltered)
			r.Post("/tasks", app.taskHandler.Create)
			r.Get("/tasks/{id}", app.taskHandler.Get)
			r.Put("/tasks/{id}", app.taskHandler.Update)
			r.Patch("/tasks/{id}", app.taskHandler.Update)
			r.Delete("/tasks/{id}", app.taskHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
