package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's owner ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds 255 characters.
	ErrTaskTitleTooLong = errors.New("task title must be at most 255 characters long")

	// ErrTaskDescriptionTooLong is returned when a description exceeds 1000 characters.
	ErrTaskDescriptionTooLong = errors.New("task description must be at most 1000 characters long")

	// ErrInvalidTaskStatus is returned when a status is not one of the known values.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrDueDateInPast is returned when a due date earlier than today is
	// supplied at creation or update time.
	ErrDueDateInPast = errors.New("due date cannot be in the past")
)

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus converts a string into a TaskStatus.
// Returns ErrInvalidTaskStatus for anything outside the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}

// Valid reports whether the status is one of the known enum values.
func (s TaskStatus) Valid() bool {
	_, err := ParseTaskStatus(string(s))
	return err == nil
}

// String returns the wire representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// DateLayout is the wire format for calendar dates (due dates, range filters).
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
// It marshals to and from JSON as a "YYYY-MM-DD" string.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// BeforeDate reports whether d falls on an earlier calendar day than other.
func (d Date) BeforeDate(other Date) bool {
	return d.Time.Before(other.Time)
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a unit of work owned by exactly one user.
// Ownership is set at creation and never transferred. DeletedAt implements
// soft deletion: a non-nil value means the task is absent from every normal
// query while the row is retained in storage.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *Date      `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// NewTask creates a new Task owned by userID.
// An empty status defaults to pending. It generates a new UUID for the
// task ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, description *string, status TaskStatus, dueDate *Date) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation. The due-date-not-in-past
// rule is deliberately not part of structural validation: a stored task may
// carry a past due date once time has moved on. The service applies that
// rule to incoming values via ValidateDueDate.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}
	if utf8.RuneCountInString(t.Title) > 255 {
		return ErrTaskTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > 1000 {
		return ErrTaskDescriptionTooLong
	}

	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}

	return nil
}

// ValidateDueDate checks that a due date supplied by a client is today or
// later. Applies at creation and update time only.
func ValidateDueDate(d Date) error {
	if d.BeforeDate(Today()) {
		return ErrDueDateInPast
	}
	return nil
}
