// Package memory provides in-memory repository implementations mirroring the
// postgres ones. They back the service and handler tests and are handy for
// local experiments without a database.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/domain/repository"
)

var ErrDuplicateEmail = errors.New("memory: duplicate email")

type taskRec struct {
	task  entity.Task
	flags entity.StatusFlags // raw, may be corrupt like legacy stored rows
	seq   int
}

type employeeRec struct {
	emp entity.Employee
	seq int
}

// Store holds all three repositories behind one mutex, matching the
// one-document-store shape of the system.
type Store struct {
	mu        sync.RWMutex
	seq       int
	employees map[string]*employeeRec
	admins    map[string]*entity.Admin
	tasks     map[string]*taskRec
}

func New() *Store {
	return &Store{
		employees: map[string]*employeeRec{},
		admins:    map[string]*entity.Admin{},
		tasks:     map[string]*taskRec{},
	}
}

func (s *Store) Employees() repository.EmployeeRepository { return (*employeeRepo)(s) }
func (s *Store) Admins() repository.AdminRepository       { return (*adminRepo)(s) }
func (s *Store) Tasks() repository.TaskRepository         { return (*taskRepo)(s) }

// CorruptFlags overwrites a task's raw flags, simulating rows written by the
// old document model. Test hook only.
func (s *Store) CorruptFlags(taskID string, f entity.StatusFlags) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tasks[taskID]
	if !ok {
		return false
	}
	rec.flags = f
	rec.task.Status, _ = f.Normalize()
	return true
}

func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

func (s *Store) emailTaken(email string) bool {
	email = strings.ToLower(email)
	for _, rec := range s.employees {
		if rec.emp.Email == email {
			return true
		}
	}
	for _, a := range s.admins {
		if a.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) tasksOf(employeeID string) []entity.Task {
	recs := make([]*taskRec, 0)
	for _, rec := range s.tasks {
		if rec.task.EmployeeID == employeeID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]entity.Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.task)
	}
	return out
}

// --- EmployeeRepository ---

type employeeRepo Store

func (r *employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(e.Email) {
		return ErrDuplicateEmail
	}
	e.ID = uuid.NewString()
	e.Email = strings.ToLower(e.Email)
	e.Role = entity.RoleEmployee
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	s.employees[e.ID] = &employeeRec{emp: cp, seq: s.nextSeq()}
	return nil
}

func (r *employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	cp := rec.emp
	cp.Tasks = s.tasksOf(id)
	return &cp, nil
}

func (r *employeeRepo) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(email)
	for id, rec := range s.employees {
		if rec.emp.Email == email {
			cp := rec.emp
			cp.Tasks = s.tasksOf(id)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) GetByResetToken(_ context.Context, token string) (*entity.Employee, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.employees {
		e := rec.emp
		if e.ResetPasswordToken != nil && *e.ResetPasswordToken == token &&
			e.ResetPasswordExpires != nil && e.ResetPasswordExpires.After(time.Now()) {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*employeeRec, 0, len(s.employees))
	for _, rec := range s.employees {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]*entity.Employee, 0, len(recs))
	for _, rec := range recs {
		cp := rec.emp
		cp.Tasks = s.tasksOf(cp.ID)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *employeeRepo) UpdateAuth(_ context.Context, e *entity.Employee) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.employees[e.ID]
	if !ok {
		return errors.New("memory: employee not found")
	}
	rec.emp.Password = e.Password
	rec.emp.ResetPasswordToken = e.ResetPasswordToken
	rec.emp.ResetPasswordExpires = e.ResetPasswordExpires
	rec.emp.UpdatedAt = time.Now()
	return nil
}

func (r *employeeRepo) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return errors.New("memory: employee not found")
	}
	delete(s.employees, id)
	for tid, rec := range s.tasks {
		if rec.task.EmployeeID == id {
			delete(s.tasks, tid)
		}
	}
	return nil
}

// --- AdminRepository ---

type adminRepo Store

func (r *adminRepo) Create(_ context.Context, a *entity.Admin) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(a.Email) {
		return ErrDuplicateEmail
	}
	a.ID = uuid.NewString()
	a.Email = strings.ToLower(a.Email)
	a.Role = entity.RoleAdmin
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.admins[a.ID] = &cp
	return nil
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*entity.Admin, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, a := range s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *adminRepo) GetByResetToken(_ context.Context, token string) (*entity.Admin, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.ResetPasswordToken != nil && *a.ResetPasswordToken == token &&
			a.ResetPasswordExpires != nil && a.ResetPasswordExpires.After(time.Now()) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *adminRepo) UpdateAuth(_ context.Context, a *entity.Admin) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.admins[a.ID]
	if !ok {
		return errors.New("memory: admin not found")
	}
	stored.Password = a.Password
	stored.ResetPasswordToken = a.ResetPasswordToken
	stored.ResetPasswordExpires = a.ResetPasswordExpires
	stored.UpdatedAt = time.Now()
	return nil
}

// --- TaskRepository ---

type taskRepo Store

func (r *taskRepo) Insert(_ context.Context, t *entity.Task) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[t.EmployeeID]; !ok {
		return errors.New("memory: employee not found")
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.tasks[t.ID] = &taskRec{task: cp, flags: t.Status.Flags(), seq: s.nextSeq()}
	return nil
}

func (r *taskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := rec.task
	cp.Status, _ = rec.flags.Normalize()
	return &cp, nil
}

func (r *taskRepo) GetOwned(_ context.Context, employeeID, id string) (*entity.Task, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tasks[id]
	if !ok || rec.task.EmployeeID != employeeID {
		return nil, nil
	}
	cp := rec.task
	cp.Status, _ = rec.flags.Normalize()
	return &cp, nil
}

func (r *taskRepo) ListByEmployee(_ context.Context, employeeID string) ([]entity.Task, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksOf(employeeID), nil
}

func (r *taskRepo) ListAll(_ context.Context) ([]entity.TaskWithOwner, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*taskRec, 0, len(s.tasks))
	for _, rec := range s.tasks {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]entity.TaskWithOwner, 0, len(recs))
	for _, rec := range recs {
		emp, ok := s.employees[rec.task.EmployeeID]
		if !ok {
			continue
		}
		tw := entity.TaskWithOwner{Task: rec.task, OwnerName: emp.emp.FirstName, OwnerEmail: emp.emp.Email}
		tw.Status, _ = rec.flags.Normalize()
		out = append(out, tw)
	}
	return out, nil
}

func (r *taskRepo) SetStatus(_ context.Context, id string, st entity.Status) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tasks[id]
	if !ok {
		return errors.New("memory: task not found")
	}
	rec.task.Status = st
	rec.flags = st.Flags()
	rec.task.UpdatedAt = time.Now()
	return nil
}

func (r *taskRepo) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return errors.New("memory: task not found")
	}
	delete(s.tasks, id)
	return nil
}

func (r *taskRepo) ListFlags(_ context.Context) ([]entity.TaskFlagsRow, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*taskRec, 0, len(s.tasks))
	for _, rec := range s.tasks {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]entity.TaskFlagsRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, entity.TaskFlagsRow{TaskID: rec.task.ID, EmployeeID: rec.task.EmployeeID, Flags: rec.flags})
	}
	return out, nil
}

func (r *taskRepo) RefreshCounts(_ context.Context, employeeID string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.employees[employeeID]
	if !ok {
		return errors.New("memory: employee not found")
	}
	var c entity.TaskCounts
	for _, tr := range s.tasks {
		if tr.task.EmployeeID != employeeID {
			continue
		}
		if tr.flags.Active {
			c.Active++
		}
		if tr.flags.NewTask {
			c.NewTask++
		}
		if tr.flags.Completed {
			c.Completed++
		}
		if tr.flags.Failed {
			c.Failed++
		}
	}
	rec.emp.TaskCounts = c
	return nil
}

var (
	_ repository.EmployeeRepository = (*employeeRepo)(nil)
	_ repository.AdminRepository    = (*adminRepo)(nil)
	_ repository.TaskRepository     = (*taskRepo)(nil)
)
