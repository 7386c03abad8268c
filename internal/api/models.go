package api

import (
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,max=100"`
	Email                string `json:"email"                 validate:"required,email,max=150"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthData is the data object returned by register and login: the bearer
// token alongside the authenticated user.
type AuthData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// CreateTaskRequest defines the payload for task creation. Status and the
// optional fields are validated here syntactically; the due-date-not-in-past
// rule lives in the service so create and update share it.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     *string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

// toInput converts the validated request into the service input.
func (req *CreateTaskRequest) toInput() service.CreateTaskInput {
	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.DueDate != nil {
		// Format already validated by the datetime tag.
		if d, err := domain.ParseDate(*req.DueDate); err == nil {
			input.DueDate = &d
		}
	}
	return input
}

// UpdateTaskRequest defines the payload for partial task updates. Every
// field is optional; a field that is absent or explicitly null decodes to
// nil and leaves the stored value unchanged. A present title must be
// non-empty.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     *string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

// toInput converts the validated request into the service patch.
func (req *UpdateTaskRequest) toInput() service.UpdateTaskInput {
	patch := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.DueDate != nil {
		if d, err := domain.ParseDate(*req.DueDate); err == nil {
			patch.DueDate = &d
		}
	}
	return patch
}
