package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	repo "github.com/kgnit/employee-tasks/internal/domain/repository"
)

// TaskService is the task lifecycle engine. Every write path funnels a task
// through a single Status value before persisting, then refreshes the owning
// employee's denormalized counts, in that order.
type TaskService struct {
	Employees repo.EmployeeRepository
	Tasks     repo.TaskRepository
	Logger    *logrus.Logger
}

type AssignTaskInput struct {
	Title       string
	Description string
	Date        string
	Category    string
}

// Assign creates a task for the employee. New tasks always start in the
// newTask stage.
func (s *TaskService) Assign(ctx context.Context, employeeID string, in AssignTaskInput) (*entity.Task, error) {
	e, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	t := &entity.Task{
		EmployeeID:  e.ID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Category:    in.Category,
		Status:      entity.StatusNew,
	}
	if err := s.Tasks.Insert(ctx, t); err != nil {
		return nil, err
	}
	if err := s.Tasks.RefreshCounts(ctx, e.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// AdminSetStatus sets a task's status by name, looking the task up globally.
// An unrecognized status name falls back to newTask.
func (s *TaskService) AdminSetStatus(ctx context.Context, taskID, statusName string) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	st, ok := entity.ParseStatus(statusName)
	if !ok && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "status": statusName}).Warn("unrecognized task status, defaulting to newTask")
	}
	if err := s.Tasks.SetStatus(ctx, taskID, st); err != nil {
		return nil, err
	}
	if err := s.Tasks.RefreshCounts(ctx, t.EmployeeID); err != nil {
		return nil, err
	}
	t.Status = st
	return t, nil
}

// SelfSetStatus applies an employee's own status update. The task is looked
// up scoped to the caller's id, so a task id belonging to another employee
// reads as not found and nothing is mutated.
func (s *TaskService) SelfSetStatus(ctx context.Context, employeeID, taskID string, intents entity.StatusFlags) (*entity.Task, error) {
	t, err := s.Tasks.GetOwned(ctx, employeeID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	st := entity.IntentStatus(intents)
	if err := s.Tasks.SetStatus(ctx, taskID, st); err != nil {
		return nil, err
	}
	if err := s.Tasks.RefreshCounts(ctx, employeeID); err != nil {
		return nil, err
	}
	t.Status = st
	return t, nil
}

// ListAll returns every task annotated with its owner.
func (s *TaskService) ListAll(ctx context.Context) ([]entity.TaskWithOwner, error) {
	return s.Tasks.ListAll(ctx)
}

func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	t, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	if err := s.Tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	return s.Tasks.RefreshCounts(ctx, t.EmployeeID)
}

// Migrate scans every stored task and rewrites those whose raw flags violate
// mutual exclusivity: multiple true flags collapse by priority completed >
// failed > active > newTask, zero true flags become newTask. Only employees
// owning a rewritten task get their counts refreshed, and the returned count
// is of those employees. Running it again immediately reports zero.
func (s *TaskService) Migrate(ctx context.Context) (int, error) {
	rows, err := s.Tasks.ListFlags(ctx)
	if err != nil {
		return 0, err
	}
	changed := map[string]struct{}{}
	for _, row := range rows {
		if row.Flags.TrueCount() == 1 {
			continue
		}
		st, _ := row.Flags.Normalize()
		if err := s.Tasks.SetStatus(ctx, row.TaskID, st); err != nil {
			return 0, err
		}
		changed[row.EmployeeID] = struct{}{}
	}
	for id := range changed {
		if err := s.Tasks.RefreshCounts(ctx, id); err != nil {
			return 0, err
		}
	}
	if s.Logger != nil && len(changed) > 0 {
		s.Logger.WithField("employees_updated", len(changed)).Info("task status migration applied")
	}
	return len(changed), nil
}
