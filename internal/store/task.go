package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Pagination bounds for task listings.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TaskFilter narrows and paginates a task listing. All predicate fields are
// optional; a nil field applies no constraint. Page and PerPage fall back
// to sane defaults when out of range.
type TaskFilter struct {
	Status  *domain.TaskStatus // Exact status match
	DueFrom *domain.Date       // Inclusive lower bound on due_date
	DueTo   *domain.Date       // Inclusive upper bound on due_date
	Page    int                // 1-based page number
	PerPage int                // Page size, 1..MaxPerPage
}

// Normalize clamps pagination values into their valid ranges.
func (f *TaskFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

// TaskPage is one page of a filtered task listing together with the
// pagination bookkeeping the API's meta object is built from.
// From and To are 1-based positions of the first and last item within the
// full filtered result, nil when the page is empty.
type TaskPage struct {
	Items       []*domain.Task
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	From        *int
	To          *int
}

// NewTaskPage assembles the pagination bookkeeping for one page of results.
// total is the full filtered count; items is the slice for the current page.
func NewTaskPage(items []*domain.Task, filter TaskFilter, total int) *TaskPage {
	lastPage := (total + filter.PerPage - 1) / filter.PerPage
	if lastPage < 1 {
		lastPage = 1
	}

	page := &TaskPage{
		Items:       items,
		CurrentPage: filter.Page,
		LastPage:    lastPage,
		PerPage:     filter.PerPage,
		Total:       total,
	}

	if len(items) > 0 {
		from := (filter.Page-1)*filter.PerPage + 1
		to := from + len(items) - 1
		page.From = &from
		page.To = &to
	}

	return page
}

// TaskStore defines the interface for task data persistence.
//
// Every query and mutation except GetAnyByID is scoped twice: by the owning
// user's ID and by the soft-delete predicate (deleted_at IS NULL). Both
// predicates are spelled out in each query rather than applied by any
// implicit default scope.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity wrapping the domain error if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a non-deleted task by ID, scoped to ownerID.
	// Returns ErrTaskNotFound when the task is missing, soft-deleted, or
	// owned by another user.
	GetForUser(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)

	// ListForUser returns one page of ownerID's non-deleted tasks matching
	// the filter, ordered by creation time descending.
	ListForUser(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) (*TaskPage, error)

	// Update persists the task's mutable fields (title, description, status,
	// due date, updated_at), scoped to the task's owner and to non-deleted
	// rows. Returns ErrTaskNotFound under the same rule as GetForUser.
	Update(ctx context.Context, task *domain.Task) error

	// SoftDeleteForUser marks the task deleted by setting deleted_at.
	// Returns (false, nil) when the task does not exist, is already
	// deleted, or is owned by another user; the row is never removed.
	SoftDeleteForUser(ctx context.Context, ownerID, id uuid.UUID) (bool, error)

	// GetAnyByID retrieves a task by ID regardless of owner or soft-delete
	// state. This is the explicit administrative/debug path; request
	// handlers must never use it.
	GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}
