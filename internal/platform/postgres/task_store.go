package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, user_id, title, description, status, due_date, created_at, updated_at, deleted_at"

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// Every query spells out its ownership predicate (user_id = $owner) and the
// soft-delete predicate (deleted_at IS NULL) explicitly; there is no default
// scope hiding either. GetAnyByID is the one deliberate exception.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		nullString(task.Description),
		task.Status.String(),
		nullDate(task.DueDate),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to insert task", "error", err, "task_id", task.ID, "user_id", task.UserID)
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetForUser implements store.TaskStore.GetForUser
func (s *TaskStore) GetForUser(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, taskColumns)

	return s.scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
}

// GetAnyByID implements store.TaskStore.GetAnyByID. It ignores both the
// ownership and soft-delete predicates; administrative/debug use only.
func (s *TaskStore) GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id = $1
	`, taskColumns)

	return s.scanTask(s.db.QueryRowContext(ctx, query, id))
}

// ListForUser implements store.TaskStore.ListForUser
func (s *TaskStore) ListForUser(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error) {
	filter.Normalize()

	where, args := buildTaskListWhere(ownerID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		s.logger.Error("failed to count tasks", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM tasks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(args)+1, len(args)+2,
	)
	offset := (filter.Page - 1) * filter.PerPage
	args = append(args, filter.PerPage, offset)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		s.logger.Error("failed to query tasks", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTaskFrom(rows.Scan)
		if err != nil {
			s.logger.Error("failed to scan task row", "error", err, "user_id", ownerID)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating task rows", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return store.NewTaskPage(tasks, filter, total), nil
}

// buildTaskListWhere assembles the WHERE clause for ListForUser. The
// ownership and soft-delete predicates are always present; status and
// due-date bounds are appended when the filter sets them.
func buildTaskListWhere(ownerID uuid.UUID, filter store.TaskFilter) (string, []any) {
	conditions := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{ownerID}

	if filter.Status != nil {
		args = append(args, filter.Status.String())
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DueFrom != nil {
		args = append(args, filter.DueFrom.Time)
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.DueTo != nil {
		args = append(args, filter.DueTo.Time)
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullString(task.Description),
		task.Status.String(),
		nullDate(task.DueDate),
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", task.ID, "user_id", task.UserID)
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// SoftDeleteForUser implements store.TaskStore.SoftDeleteForUser
func (s *TaskStore) SoftDeleteForUser(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE tasks
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id, ownerID)
	if err != nil {
		s.logger.Error("failed to soft-delete task", "error", err, "task_id", id, "user_id", ownerID)
		return false, fmt.Errorf("failed to soft-delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// scanTask reads one task row, translating sql.ErrNoRows into the store's
// not-found sentinel.
func (s *TaskStore) scanTask(row *sql.Row) (*domain.Task, error) {
	task, err := scanTaskFrom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		s.logger.Error("failed to scan task row", "error", err)
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}
	return task, nil
}

// scanTaskFrom maps one row of taskColumns into a domain.Task using the
// given scan function (works for both *sql.Row and *sql.Rows).
func scanTaskFrom(scan func(dest ...any) error) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		dueDate     sql.NullTime
		deletedAt   sql.NullTime
	)

	err := scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&status,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.TaskStatus(status)
	if dueDate.Valid {
		d := domain.Date{Time: dueDate.Time.UTC().Truncate(24 * time.Hour)}
		task.DueDate = &d
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		task.DeletedAt = &t
	}

	return &task, nil
}

// nullString converts an optional string into its database representation.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullDate converts an optional date into its database representation.
func nullDate(d *domain.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}
