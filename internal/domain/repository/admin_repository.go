package repository

import (
	"context"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
)

// AdminRepository defines persistence operations for admins.
type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) error
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	GetByResetToken(ctx context.Context, token string) (*entity.Admin, error)
	UpdateAuth(ctx context.Context, a *entity.Admin) error
}
