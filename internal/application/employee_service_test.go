package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/infrastructure/memory"
)

func newEmployeeFixture(t *testing.T) (*memory.Store, *EmployeeService, *TaskService) {
	t.Helper()
	store := memory.New()
	emp := &EmployeeService{Employees: store.Employees(), Admins: store.Admins()}
	tasks := &TaskService{Employees: store.Employees(), Tasks: store.Tasks()}
	return store, emp, tasks
}

func TestCreateEmployee(t *testing.T) {
	store, svc, _ := newEmployeeFixture(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, entity.RoleEmployee, e.Role)
	assert.NotEqual(t, "123456", e.Password) // stored hashed

	_, err = svc.Create(ctx, "Dup", "e@e.com", "123456")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// admin emails are off limits too
	require.NoError(t, store.Admins().Create(ctx, &entity.Admin{FirstName: "A", Email: "boss@e.com", Password: "x"}))
	_, err = svc.Create(ctx, "B", "boss@e.com", "123456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestProfileIncludesTasks(t *testing.T) {
	_, svc, taskSvc := newEmployeeFixture(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)
	_, err = taskSvc.Assign(ctx, e.ID, AssignTaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = taskSvc.Assign(ctx, e.ID, AssignTaskInput{Title: "b"})
	require.NoError(t, err)

	p, err := svc.Profile(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, p.Tasks, 2)
	assert.Equal(t, entity.TaskCounts{NewTask: 2}, p.TaskCounts)

	_, err = svc.Profile(ctx, "nope")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDeleteEmployeeRemovesTasks(t *testing.T) {
	store, svc, taskSvc := newEmployeeFixture(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)
	task, err := taskSvc.Assign(ctx, e.ID, AssignTaskInput{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))

	gone, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.Delete(ctx, e.ID), ErrEmployeeNotFound)
}

// totalTasks counts active+completed+failed only; tasks still in newTask are
// not part of the headline number.
func TestDashboardAggregation(t *testing.T) {
	_, svc, taskSvc := newEmployeeFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "Sneha", "employee2@example.com", "123456")
	require.NoError(t, err)

	mk := func(empID, status string) {
		task, err := taskSvc.Assign(ctx, empID, AssignTaskInput{Title: status})
		require.NoError(t, err)
		if status != "newTask" {
			_, err = taskSvc.AdminSetStatus(ctx, task.ID, status)
			require.NoError(t, err)
		}
	}
	mk(a.ID, "active")
	mk(a.ID, "completed")
	mk(a.ID, "newTask")
	mk(b.ID, "failed")
	mk(b.ID, "completed")

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		TotalEmployees: 2,
		TotalTasks:     4,
		CompletedTasks: 2,
		ActiveTasks:    1,
		FailedTasks:    1,
	}, stats)
}
