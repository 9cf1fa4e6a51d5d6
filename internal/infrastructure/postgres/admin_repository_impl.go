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

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `
	id, first_name, email, password_hash, role,
	reset_password_token, reset_password_expires,
	created_at, updated_at`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	a := &entity.Admin{}
	if err := row.Scan(
		&a.ID, &a.FirstName, &a.Email, &a.Password, &a.Role,
		&a.ResetPasswordToken, &a.ResetPasswordExpires,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *entity.Admin) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (first_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, role, created_at, updated_at
	`, a.FirstName, strings.ToLower(a.Email), a.Password)
	return row.Scan(&a.ID, &a.Role, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, strings.ToLower(email))
	return scanAdmin(row)
}

func (r *AdminRepository) GetByResetToken(ctx context.Context, token string) (*entity.Admin, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+adminColumns+`
		FROM admins
		WHERE reset_password_token = $1 AND reset_password_expires > now()
	`, token)
	return scanAdmin(row)
}

func (r *AdminRepository) UpdateAuth(ctx context.Context, a *entity.Admin) error {
	a.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE admins
		SET password_hash = $1, reset_password_token = $2, reset_password_expires = $3, updated_at = $4
		WHERE id = $5
	`, a.Password, a.ResetPasswordToken, a.ResetPasswordExpires, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

var _ repository.AdminRepository = (*AdminRepository)(nil)
