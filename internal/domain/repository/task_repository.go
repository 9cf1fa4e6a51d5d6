package repository

import (
	"context"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
)

// TaskRepository defines persistence operations for tasks. Tasks live in
// their own table keyed by id with a foreign key to the owning employee, so
// admin lookups by task id need no scan over employees.
type TaskRepository interface {
	Insert(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// GetOwned returns the task only when it belongs to the given employee.
	GetOwned(ctx context.Context, employeeID, id string) (*entity.Task, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]entity.Task, error)
	ListAll(ctx context.Context) ([]entity.TaskWithOwner, error)
	SetStatus(ctx context.Context, id string, st entity.Status) error
	Delete(ctx context.Context, id string) error
	// ListFlags returns every stored task with its raw status flags, for the
	// bulk repair routine.
	ListFlags(ctx context.Context) ([]entity.TaskFlagsRow, error)
	// RefreshCounts recomputes the employee's denormalized task counts from
	// its task rows. Callers invoke it after every task mutation.
	RefreshCounts(ctx context.Context, employeeID string) error
}
