package repository

import (
	"context"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
)

// EmployeeRepository defines persistence operations for employees.
// GetByID and List return employees with their task lists loaded.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	// GetByResetToken returns the employee holding the given unexpired reset
	// token, or nil when none matches.
	GetByResetToken(ctx context.Context, token string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	// UpdateAuth persists password and reset-token fields.
	UpdateAuth(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
}
