package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// application bundles the configured dependencies the server runs on.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authService *auth.Service
	taskService *service.TaskService

	authHandler *api.AuthHandler
	taskHandler *api.TaskHandler
}

// newApplication wires stores, services, and handlers from the outside in.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewUserStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)
	tokenStore := postgres.NewTokenStore(db, log)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := auth.NewBcryptHasher(0)
	authService := auth.NewService(userStore, tokenStore, tokenService, hasher, hasher, log)
	taskService := service.NewTaskService(taskStore, log)

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		authService: authService,
		taskService: taskService,
		authHandler: api.NewAuthHandler(authService),
		taskHandler: api.NewTaskHandler(taskService),
	}, nil
}
