package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestBuildTaskListWhere(t *testing.T) {
	ownerID := uuid.New()
	status := domain.TaskStatusPending
	from := domain.NewDate(2030, 1, 1)
	to := domain.NewDate(2030, 2, 1)

	t.Run("base predicates always present", func(t *testing.T) {
		where, args := buildTaskListWhere(ownerID, store.TaskFilter{})
		assert.Equal(t, "WHERE user_id = $1 AND deleted_at IS NULL", where)
		assert.Equal(t, []any{ownerID}, args)
	})

	t.Run("status only", func(t *testing.T) {
		where, args := buildTaskListWhere(ownerID, store.TaskFilter{Status: &status})
		assert.Equal(t, "WHERE user_id = $1 AND deleted_at IS NULL AND status = $2", where)
		require.Len(t, args, 2)
		assert.Equal(t, "pending", args[1])
	})

	t.Run("all filters keep placeholder order", func(t *testing.T) {
		where, args := buildTaskListWhere(ownerID, store.TaskFilter{
			Status:  &status,
			DueFrom: &from,
			DueTo:   &to,
		})
		assert.Equal(t,
			"WHERE user_id = $1 AND deleted_at IS NULL AND status = $2 AND due_date >= $3 AND due_date <= $4",
			where)
		require.Len(t, args, 4)
		assert.Equal(t, from.Time, args[2])
		assert.Equal(t, to.Time, args[3])
	})

	t.Run("date range without status", func(t *testing.T) {
		where, args := buildTaskListWhere(ownerID, store.TaskFilter{DueFrom: &from})
		assert.Equal(t, "WHERE user_id = $1 AND deleted_at IS NULL AND due_date >= $2", where)
		assert.Len(t, args, 2)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", dup)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
