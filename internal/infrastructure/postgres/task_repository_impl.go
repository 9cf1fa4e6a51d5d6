package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/domain/repository"
)

// TaskRepository stores tasks in their own table with a foreign key to the
// owning employee. The four status flags are kept as columns for
// compatibility with data written by the old document model; reads collapse
// them into a single status.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `
	id, employee_id, title, description, task_date, category,
	new_task, active, completed, failed,
	created_at, updated_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	var f entity.StatusFlags
	if err := row.Scan(
		&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Date, &t.Category,
		&f.NewTask, &f.Active, &f.Completed, &f.Failed,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	// Stored rows may predate the single-status model; collapse on read.
	t.Status, _ = f.Normalize()
	return t, nil
}

func (r *TaskRepository) Insert(ctx context.Context, t *entity.Task) error {
	f := t.Status.Flags()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (employee_id, title, description, task_date, category, new_task, active, completed, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, t.EmployeeID, t.Title, t.Description, t.Date, t.Category, f.NewTask, f.Active, f.Completed, f.Failed)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *TaskRepository) GetOwned(ctx context.Context, employeeID, id string) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND employee_id = $2`, id, employeeID)
	return scanTask(row)
}

func (r *TaskRepository) ListByEmployee(ctx context.Context, employeeID string) ([]entity.Task, error) {
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

func (r *TaskRepository) ListAll(ctx context.Context) ([]entity.TaskWithOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.employee_id, t.title, t.description, t.task_date, t.category,
		       t.new_task, t.active, t.completed, t.failed,
		       t.created_at, t.updated_at,
		       e.first_name, e.email
		FROM tasks t
		JOIN employees e ON e.id = t.employee_id
		ORDER BY t.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.TaskWithOwner{}
	for rows.Next() {
		var tw entity.TaskWithOwner
		var f entity.StatusFlags
		if err := rows.Scan(
			&tw.ID, &tw.EmployeeID, &tw.Title, &tw.Description, &tw.Date, &tw.Category,
			&f.NewTask, &f.Active, &f.Completed, &f.Failed,
			&tw.CreatedAt, &tw.UpdatedAt,
			&tw.OwnerName, &tw.OwnerEmail,
		); err != nil {
			return nil, err
		}
		tw.Status, _ = f.Normalize()
		out = append(out, tw)
	}
	return out, rows.Err()
}

func (r *TaskRepository) SetStatus(ctx context.Context, id string, st entity.Status) error {
	f := st.Flags()
	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET new_task = $1, active = $2, completed = $3, failed = $4, updated_at = $5
		WHERE id = $6
	`, f.NewTask, f.Active, f.Completed, f.Failed, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) ListFlags(ctx context.Context) ([]entity.TaskFlagsRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, employee_id, new_task, active, completed, failed FROM tasks ORDER BY employee_id, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.TaskFlagsRow{}
	for rows.Next() {
		var row entity.TaskFlagsRow
		if err := rows.Scan(&row.TaskID, &row.EmployeeID, &row.Flags.NewTask, &row.Flags.Active, &row.Flags.Completed, &row.Flags.Failed); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *TaskRepository) RefreshCounts(ctx context.Context, employeeID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE employees e
		SET tasks_active    = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND active),
		    tasks_new       = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND new_task),
		    tasks_completed = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND completed),
		    tasks_failed    = (SELECT count(*) FROM tasks WHERE employee_id = e.id AND failed),
		    updated_at      = now()
		WHERE e.id = $1
	`, employeeID)
	return err
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
