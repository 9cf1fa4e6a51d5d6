package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/infrastructure/memory"
)

func newTaskFixture(t *testing.T) (*memory.Store, *TaskService, *entity.Employee) {
	t.Helper()
	store := memory.New()
	svc := &TaskService{Employees: store.Employees(), Tasks: store.Tasks()}
	e := &entity.Employee{FirstName: "Ruhith", Email: "e@e.com", Password: "x"}
	require.NoError(t, store.Employees().Create(context.Background(), e))
	return store, svc, e
}

func counts(t *testing.T, store *memory.Store, employeeID string) entity.TaskCounts {
	t.Helper()
	e, err := store.Employees().GetByID(context.Background(), employeeID)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e.TaskCounts
}

func TestAssignStartsAsNewTask(t *testing.T) {
	store, svc, e := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "write report", Description: "monthly", Date: "2024-10-05", Category: "reporting"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, task.Status)
	assert.Equal(t, entity.TaskCounts{NewTask: 1}, counts(t, store, e.ID))
}

func TestAssignUnknownEmployee(t *testing.T) {
	_, svc, _ := newTaskFixture(t)
	_, err := svc.Assign(context.Background(), "nope", AssignTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

// Full lifecycle: assigned as newTask, accepted by the employee, then marked
// completed by the admin. Counts track each hop, with exactly one stage set.
func TestTaskLifecycle(t *testing.T) {
	store, svc, e := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "fix login"})
	require.NoError(t, err)

	got, err := svc.SelfSetStatus(ctx, e.ID, task.ID, entity.StatusFlags{Active: true})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, got.Status)
	assert.Equal(t, entity.TaskCounts{Active: 1}, counts(t, store, e.ID))

	got, err = svc.AdminSetStatus(ctx, task.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.Equal(t, entity.TaskCounts{Completed: 1}, counts(t, store, e.ID))
}

func TestAdminSetStatusUnrecognizedName(t *testing.T) {
	store, svc, e := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "t"})
	require.NoError(t, err)
	_, err = svc.AdminSetStatus(ctx, task.ID, "active")
	require.NoError(t, err)

	got, err := svc.AdminSetStatus(ctx, task.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, got.Status)
	assert.Equal(t, entity.TaskCounts{NewTask: 1}, counts(t, store, e.ID))
}

func TestAdminSetStatusUnknownTask(t *testing.T) {
	_, svc, _ := newTaskFixture(t)
	_, err := svc.AdminSetStatus(context.Background(), "nope", "completed")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// A task id belonging to someone else reads as not found and nothing changes.
func TestSelfSetStatusOtherEmployeesTask(t *testing.T) {
	store, svc, owner := newTaskFixture(t)
	ctx := context.Background()

	other := &entity.Employee{FirstName: "Sneha", Email: "employee2@example.com", Password: "x"}
	require.NoError(t, store.Employees().Create(ctx, other))

	task, err := svc.Assign(ctx, owner.ID, AssignTaskInput{Title: "t"})
	require.NoError(t, err)

	_, err = svc.SelfSetStatus(ctx, other.ID, task.ID, entity.StatusFlags{Completed: true})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	unchanged, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, unchanged.Status)
	assert.Equal(t, entity.TaskCounts{NewTask: 1}, counts(t, store, owner.ID))
}

func TestSelfSetStatusAmbiguousIntent(t *testing.T) {
	_, svc, e := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "t"})
	require.NoError(t, err)

	// active wins over completed for self-service updates
	got, err := svc.SelfSetStatus(ctx, e.ID, task.ID, entity.StatusFlags{Active: true, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, got.Status)

	// and an empty body resets to newTask
	got, err = svc.SelfSetStatus(ctx, e.ID, task.ID, entity.StatusFlags{})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, got.Status)
}

func TestDeleteTaskRefreshesCounts(t *testing.T) {
	store, svc, e := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "t"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, task.ID))
	assert.Equal(t, entity.TaskCounts{}, counts(t, store, e.ID))

	assert.ErrorIs(t, svc.Delete(ctx, task.ID), ErrTaskNotFound)
}

// Rows written by the old document model can hold zero or several true flags.
// Migrate repairs them by priority and reports how many employees were
// touched; a second run finds nothing left to do.
func TestMigrateRepairsCorruptFlags(t *testing.T) {
	store, svc, e := newTaskFixture(t)
	ctx := context.Background()

	clean, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "clean"})
	require.NoError(t, err)
	conflicted, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "conflicted"})
	require.NoError(t, err)
	empty, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "empty"})
	require.NoError(t, err)

	require.True(t, store.CorruptFlags(conflicted.ID, entity.StatusFlags{Active: true, Completed: true}))
	require.True(t, store.CorruptFlags(empty.ID, entity.StatusFlags{}))

	updated, err := svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, updated) // one employee owned repaired tasks

	got, err := store.Tasks().GetByID(ctx, conflicted.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, got.Status)

	got, err = store.Tasks().GetByID(ctx, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, got.Status)

	got, err = store.Tasks().GetByID(ctx, clean.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, got.Status)

	assert.Equal(t, entity.TaskCounts{NewTask: 2, Completed: 1}, counts(t, store, e.ID))

	updated, err = svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestMigrateNoTasks(t *testing.T) {
	_, svc, _ := newTaskFixture(t)
	updated, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestListAllCarriesOwner(t *testing.T) {
	_, svc, e := newTaskFixture(t)
	ctx := context.Background()

	_, err := svc.Assign(ctx, e.ID, AssignTaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, e.ID, AssignTaskInput{Title: "b"})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "Ruhith", all[0].OwnerName)
	assert.Equal(t, "e@e.com", all[0].OwnerEmail)
}
