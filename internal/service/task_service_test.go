package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore with the same ownership and
// soft-delete semantics as the Postgres adapter.
type fakeTaskStore struct {
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) GetForUser(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID || task.DeletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) ListForUser(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error) {
	filter.Normalize()

	var matched []*domain.Task
	for _, task := range s.tasks {
		if task.UserID != ownerID || task.DeletedAt != nil {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.DueFrom != nil && (task.DueDate == nil || task.DueDate.Before(filter.DueFrom.Time)) {
			continue
		}
		if filter.DueTo != nil && (task.DueDate == nil || task.DueDate.After(filter.DueTo.Time)) {
			continue
		}
		matched = append(matched, task)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PerPage
	if start > total {
		start = total
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}

	return store.NewTaskPage(matched[start:end], filter, total), nil
}

func (s *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	existing, ok := s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID || existing.DeletedAt != nil {
		return store.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) SoftDeleteForUser(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID || task.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	task.DeletedAt = &now
	return true, nil
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestTaskServiceCreate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("round-trips provided fields with defaults", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		due := domain.Today()

		created, err := svc.Create(context.Background(), ownerID, CreateTaskInput{
			Title:   "Buy milk",
			DueDate: &due,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, created.Status)

		got, err := svc.Get(context.Background(), ownerID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		require.NotNil(t, got.DueDate)
		assert.True(t, got.DueDate.Equal(due.Time))
		assert.Nil(t, got.Description)
	})

	t.Run("rejects past due date before writing", func(t *testing.T) {
		fake := newFakeTaskStore()
		svc := NewTaskService(fake, nil)
		past := domain.Date{Time: domain.Today().AddDate(0, 0, -1)}

		_, err := svc.Create(context.Background(), ownerID, CreateTaskInput{
			Title:   "Buy milk",
			DueDate: &past,
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "due_date", validationErr.Field)
		assert.Empty(t, fake.tasks)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		_, err := svc.Create(context.Background(), ownerID, CreateTaskInput{Title: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskServiceOwnershipScoping(t *testing.T) {
	ownerA := uuid.New()
	ownerB := uuid.New()
	svc := NewTaskService(newFakeTaskStore(), nil)

	task, err := svc.Create(context.Background(), ownerA, CreateTaskInput{Title: "A's task"})
	require.NoError(t, err)

	// Every operation by B on A's task behaves as if the task does not exist.
	_, err = svc.Get(context.Background(), ownerB, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.Update(context.Background(), ownerB, task.ID, UpdateTaskInput{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	deleted, err := svc.Delete(context.Background(), ownerB, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// A still sees it untouched.
	got, err := svc.Get(context.Background(), ownerA, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "A's task", got.Title)
}

func TestTaskServiceUpdate(t *testing.T) {
	ownerID := uuid.New()

	newTask := func(t *testing.T, svc *TaskService) *domain.Task {
		t.Helper()
		desc := "with description"
		task, err := svc.Create(context.Background(), ownerID, CreateTaskInput{
			Title:       "Buy milk",
			Description: &desc,
		})
		require.NoError(t, err)
		return task
	}

	t.Run("omitted fields stay unchanged", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		task := newTask(t, svc)

		updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskInput{
			Status: statusPtr(domain.TaskStatusCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
		assert.Equal(t, "Buy milk", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "with description", *updated.Description)
	})

	t.Run("nil patch changes nothing", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		task := newTask(t, svc)

		updated, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskInput{})
		require.NoError(t, err)
		assert.Equal(t, task.Title, updated.Title)
		assert.Equal(t, task.Status, updated.Status)
	})

	t.Run("past due date rejected", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		task := newTask(t, svc)
		past := domain.Date{Time: domain.Today().AddDate(0, 0, -1)}

		_, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskInput{DueDate: &past})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "due_date", validationErr.Field)
	})

	t.Run("invalid patched title rejected", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		task := newTask(t, svc)

		_, err := svc.Update(context.Background(), ownerID, task.ID, UpdateTaskInput{Title: strPtr("  ")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown task", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskStore(), nil)
		_, err := svc.Update(context.Background(), ownerID, uuid.New(), UpdateTaskInput{})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	ownerID := uuid.New()
	fake := newFakeTaskStore()
	svc := NewTaskService(fake, nil)

	task, err := svc.Create(context.Background(), ownerID, CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), ownerID, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Gone from the normal read path.
	_, err = svc.Get(context.Background(), ownerID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// Still in storage with deleted_at set, via the explicit admin path.
	raw, err := fake.GetAnyByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.NotNil(t, raw.DeletedAt)

	// Deleting again reports false, not an error.
	deleted, err = svc.Delete(context.Background(), ownerID, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Unknown ID reports false too.
	deleted, err = svc.Delete(context.Background(), ownerID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTaskServiceList(t *testing.T) {
	ownerID := uuid.New()
	otherOwner := uuid.New()
	fake := newFakeTaskStore()
	svc := NewTaskService(fake, nil)

	mkTask := func(title string, status domain.TaskStatus, due *domain.Date, createdAt time.Time) *domain.Task {
		task, err := domain.NewTask(ownerID, title, nil, status, due)
		require.NoError(t, err)
		task.CreatedAt = createdAt
		require.NoError(t, fake.Create(context.Background(), task))
		return task
	}

	base := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	due1 := domain.NewDate(2030, time.February, 1)
	due2 := domain.NewDate(2030, time.March, 1)

	oldest := mkTask("oldest pending", domain.TaskStatusPending, &due1, base)
	completed := mkTask("completed", domain.TaskStatusCompleted, &due2, base.Add(time.Hour))
	newest := mkTask("newest pending", domain.TaskStatusPending, nil, base.Add(2*time.Hour))

	// Noise that must never appear: another owner's task and a deleted one.
	other, err := domain.NewTask(otherOwner, "other owner", nil, domain.TaskStatusPending, nil)
	require.NoError(t, err)
	require.NoError(t, fake.Create(context.Background(), other))
	deleted := mkTask("deleted completed", domain.TaskStatusCompleted, nil, base.Add(3*time.Hour))
	_, err = fake.SoftDeleteForUser(context.Background(), ownerID, deleted.ID)
	require.NoError(t, err)

	t.Run("orders newest first", func(t *testing.T) {
		page, err := svc.List(context.Background(), ownerID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, newest.ID, page.Items[0].ID)
		assert.Equal(t, completed.ID, page.Items[1].ID)
		assert.Equal(t, oldest.ID, page.Items[2].ID)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("status filter excludes deleted", func(t *testing.T) {
		page, err := svc.List(context.Background(), ownerID, store.TaskFilter{
			Status: statusPtr(domain.TaskStatusCompleted),
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, completed.ID, page.Items[0].ID)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 1, page.LastPage)
	})

	t.Run("due date range is inclusive", func(t *testing.T) {
		from := domain.NewDate(2030, time.February, 1)
		to := domain.NewDate(2030, time.March, 1)
		page, err := svc.List(context.Background(), ownerID, store.TaskFilter{
			DueFrom: &from,
			DueTo:   &to,
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("pagination meta", func(t *testing.T) {
		page, err := svc.List(context.Background(), ownerID, store.TaskFilter{Page: 2, PerPage: 2})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 2, page.LastPage)
		assert.Equal(t, 3, page.Total)
		require.NotNil(t, page.From)
		assert.Equal(t, 3, *page.From)
	})
}
