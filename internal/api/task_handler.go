package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskService is the surface of the task service the handler needs.
// Implemented by *service.TaskService.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, input service.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch service.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// TaskHandler handles task CRUD and listing API requests. Every operation
// passes the authenticated user's ID into the service explicitly; nothing
// below this layer consults the request context for identity.
type TaskHandler struct {
	tasks    TaskService
	validate *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		validate: newValidator(),
	}
}

// List handles GET /api/tasks: status filter and pagination only.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListFiltered handles GET /api/tasks/filter: adds the inclusive due-date
// range bounds on top of List's parameters.
func (h *TaskHandler) ListFiltered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, withDates bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	filter, fieldErrors := parseTaskFilter(r, withDates)
	if fieldErrors != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Validation error", fieldErrors)
		return
	}

	page, err := h.tasks.List(r.Context(), userID, filter)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	// Render an empty page as [] rather than null.
	items := page.Items
	if items == nil {
		items = []*domain.Task{}
	}

	shared.RespondList(w, r, "Tasks retrieved successfully.", items, metaFromPage(page))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Validation error", buildFieldErrors(err))
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, req.toInput())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, "Task created successfully", task)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task retrieved successfully", task)
}

// Update handles PUT and PATCH /api/tasks/{id}. Fields absent from the
// body, or present as JSON null, are left unchanged.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, "Validation error", buildFieldErrors(err))
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, taskID, req.toInput())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task updated successfully", task)
}

// Delete handles DELETE /api/tasks/{id}. A task that does not exist or is
// owned by someone else yields the same 404 as Get.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	deleted, err := h.tasks.Delete(r.Context(), userID, taskID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}
	if !deleted {
		shared.RespondError(w, r, http.StatusNotFound, "Task not found", nil)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task deleted successfully", nil)
}
