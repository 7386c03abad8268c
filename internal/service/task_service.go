package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskInput carries the validated fields of a task creation request.
// Status defaults to pending when nil; DueDate must be today or later when
// present.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
	DueDate     *domain.Date
}

// UpdateTaskInput is a partial patch over an existing task. Every field is
// optional: nil means "leave unchanged". A JSON null in the request decodes
// to nil too, so null never clears a field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	DueDate     *domain.Date
}

// TaskService performs ownership-scoped CRUD and filtered listing over
// tasks. Concurrent writes to the same task are last-write-wins; there is
// no optimistic versioning.
type TaskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(tasks store.TaskStore, log *slog.Logger) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
	}
}

// List returns one page of ownerID's non-deleted tasks matching the filter,
// newest-created first.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error) {
	page, err := s.tasks.ListForUser(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return page, nil
}

// Get returns the task only if it exists, is not soft-deleted, and is owned
// by ownerID. Any other case is store.ErrTaskNotFound; a task owned by
// someone else is indistinguishable from a nonexistent one.
func (s *TaskService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetForUser(ctx, ownerID, id)
}

// Create validates the input and persists a new task owned by ownerID.
// Validation happens before the insert; nothing is written on failure.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	if input.DueDate != nil {
		if err := domain.ValidateDueDate(*input.DueDate); err != nil {
			return nil, domain.NewValidationError("due_date", "Due date cannot be in the past", err)
		}
	}

	status := domain.TaskStatusPending
	if input.Status != nil {
		status = *input.Status
	}

	task, err := domain.NewTask(ownerID, input.Title, input.Description, status, input.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		"task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Update applies the patch to the task identified by id, scoped to ownerID.
// Absent (nil) fields are left untouched. Returns store.ErrTaskNotFound
// under the same indistinguishability rule as Get.
func (s *TaskService) Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.GetForUser(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.DueDate != nil {
		if err := domain.ValidateDueDate(*patch.DueDate); err != nil {
			return nil, domain.NewValidationError("due_date", "Due date cannot be in the past", err)
		}
		task.DueDate = patch.DueDate
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		"task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Delete soft-deletes the task, scoped to ownerID. Returns false, not an
// error, when the task does not exist or is not owned by ownerID. The row
// survives in storage with deleted_at set.
func (s *TaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted, err := s.tasks.SoftDeleteForUser(ctx, ownerID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	if deleted {
		logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
			"task_id", id, "user_id", ownerID)
	}
	return deleted, nil
}
