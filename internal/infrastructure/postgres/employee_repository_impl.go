package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/domain/repository"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `
	id, first_name, email, password_hash, role,
	reset_password_token, reset_password_expires,
	tasks_active, tasks_new, tasks_completed, tasks_failed,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	e := &entity.Employee{}
	if err := row.Scan(
		&e.ID, &e.FirstName, &e.Email, &e.Password, &e.Role,
		&e.ResetPasswordToken, &e.ResetPasswordExpires,
		&e.TaskCounts.Active, &e.TaskCounts.NewTask, &e.TaskCounts.Completed, &e.TaskCounts.Failed,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (first_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, role, created_at, updated_at
	`, e.FirstName, strings.ToLower(e.Email), e.Password)
	return row.Scan(&e.ID, &e.Role, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil || e == nil {
		return e, err
	}
	e.Tasks, err = r.loadTasks(ctx, e.ID)
	return e, err
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, strings.ToLower(email))
	e, err := scanEmployee(row)
	if err != nil || e == nil {
		return e, err
	}
	e.Tasks, err = r.loadTasks(ctx, e.ID)
	return e, err
}

func (r *EmployeeRepository) GetByResetToken(ctx context.Context, token string) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE reset_password_token = $1 AND reset_password_expires > now()
	`, token)
	return scanEmployee(row)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Employee
	byID := map[string]*entity.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		e.Tasks = []entity.Task{}
		out = append(out, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()
	for taskRows.Next() {
		t, err := scanTask(taskRows)
		if err != nil {
			return nil, err
		}
		if e, ok := byID[t.EmployeeID]; ok {
			e.Tasks = append(e.Tasks, *t)
		}
	}
	return out, taskRows.Err()
}

func (r *EmployeeRepository) UpdateAuth(ctx context.Context, e *entity.Employee) error {
	e.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET password_hash = $1, reset_password_token = $2, reset_password_expires = $3, updated_at = $4
		WHERE id = $5
	`, e.Password, e.ResetPasswordToken, e.ResetPasswordExpires, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	// Tasks go with the employee via ON DELETE CASCADE.
	res, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EmployeeRepository) loadTasks(ctx context.Context, employeeID string) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE employee_id = $1 ORDER BY created_at`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := []entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
