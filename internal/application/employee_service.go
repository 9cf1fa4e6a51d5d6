package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	repo "github.com/kgnit/employee-tasks/internal/domain/repository"
	"github.com/kgnit/employee-tasks/pkg/helpers"
)

// EmployeeService covers the admin-facing employee CRUD plus the employee's
// own profile view.
type EmployeeService struct {
	Employees repo.EmployeeRepository
	Admins    repo.AdminRepository
	Logger    *logrus.Logger
}

// DashboardStats aggregates task counts across every employee. totalTasks
// intentionally sums active+completed+failed only, matching the dashboard
// this API has always served.
type DashboardStats struct {
	TotalEmployees int `json:"totalEmployees"`
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	ActiveTasks    int `json:"activeTasks"`
	FailedTasks    int `json:"failedTasks"`
}

func (s *EmployeeService) List(ctx context.Context) ([]*entity.Employee, error) {
	return s.Employees.List(ctx)
}

// Create registers an employee on an admin's behalf. Uniqueness spans both
// identity kinds: an email registered as an admin cannot become an employee.
func (s *EmployeeService) Create(ctx context.Context, firstName, email, password string) (*entity.Employee, error) {
	if e, err := s.Employees.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if e != nil {
		return nil, ErrEmailTaken
	}
	if a, err := s.Admins.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if a != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	e := &entity.Employee{FirstName: firstName, Email: email, Password: hash}
	if err := s.Employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Profile(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	e, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrEmployeeNotFound
	}
	return s.Employees.Delete(ctx, id)
}

func (s *EmployeeService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	employees, err := s.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{TotalEmployees: len(employees)}
	for _, e := range employees {
		c := e.TaskCounts
		stats.TotalTasks += c.Active + c.Completed + c.Failed
		stats.CompletedTasks += c.Completed
		stats.ActiveTasks += c.Active
		stats.FailedTasks += c.Failed
	}
	return stats, nil
}
