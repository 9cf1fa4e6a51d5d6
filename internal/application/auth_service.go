package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	repo "github.com/kgnit/employee-tasks/internal/domain/repository"
	"github.com/kgnit/employee-tasks/pkg/helpers"
	"github.com/kgnit/employee-tasks/pkg/mailer"
)

// AuthService covers login, registration, and the password-reset flows for
// both identity kinds. Email uniqueness is enforced across the union of
// admins and employees.
type AuthService struct {
	Employees repo.EmployeeRepository
	Admins    repo.AdminRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Notifier  Notifier
	Logger    *logrus.Logger

	AdminKey    string
	ResetTTL    time.Duration
	ResetURL    string
	CompanyName string
	SupportURL  string
}

// LoginResult carries the issued token plus whichever identity logged in.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      string
	Employee  *entity.Employee
	Admin     *entity.Admin
}

// Login authenticates against admins first, then employees, mirroring the
// single login endpoint serving both roles.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if a, err := s.Admins.GetByEmail(ctx, email); err == nil && a != nil {
		if helpers.CompareHashAndPassword(a.Password, password) {
			return s.issue(ctx, a.ID, a.Email, a.FirstName, entity.RoleAdmin, nil, a)
		}
	}
	if e, err := s.Employees.GetByEmail(ctx, email); err == nil && e != nil {
		if helpers.CompareHashAndPassword(e.Password, password) {
			return s.issue(ctx, e.ID, e.Email, e.FirstName, entity.RoleEmployee, e, nil)
		}
	}
	return nil, ErrInvalidCredentials
}

// RegisterEmployee creates an employee account and logs it in.
func (s *AuthService) RegisterEmployee(ctx context.Context, firstName, email, password string) (*LoginResult, error) {
	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
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
	return s.issue(ctx, e.ID, e.Email, e.FirstName, entity.RoleEmployee, e, nil)
}

// RegisterAdmin creates an admin account, gated by the registration key.
func (s *AuthService) RegisterAdmin(ctx context.Context, firstName, email, password, adminKey string) (*LoginResult, error) {
	if adminKey != s.AdminKey {
		return nil, ErrInvalidAdminKey
	}
	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &entity.Admin{FirstName: firstName, Email: email, Password: hash}
	if err := s.Admins.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.issue(ctx, a.ID, a.Email, a.FirstName, entity.RoleAdmin, nil, a)
}

// ForgotPassword issues a time-limited reset token and mails a reset link.
// A nil return carries no information about whether the email exists. When
// the mail cannot be handed to the delivery pipeline the token is cleared
// again so the caller is not left holding a link that never arrived.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	token, err := helpers.NewResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.ResetTTL)

	if e, err := s.Employees.GetByEmail(ctx, email); err == nil && e != nil {
		e.ResetPasswordToken = &token
		e.ResetPasswordExpires = &expires
		if err := s.Employees.UpdateAuth(ctx, e); err != nil {
			return err
		}
		if err := s.sendReset(ctx, e.Email, e.FirstName, token); err != nil {
			e.ResetPasswordToken = nil
			e.ResetPasswordExpires = nil
			if clrErr := s.Employees.UpdateAuth(ctx, e); clrErr != nil && s.Logger != nil {
				s.Logger.WithError(clrErr).WithField("email", e.Email).Error("failed to clear reset token after send failure")
			}
			return ErrMailDelivery
		}
		return nil
	}

	if a, err := s.Admins.GetByEmail(ctx, email); err == nil && a != nil {
		a.ResetPasswordToken = &token
		a.ResetPasswordExpires = &expires
		if err := s.Admins.UpdateAuth(ctx, a); err != nil {
			return err
		}
		if err := s.sendReset(ctx, a.Email, a.FirstName, token); err != nil {
			a.ResetPasswordToken = nil
			a.ResetPasswordExpires = nil
			if clrErr := s.Admins.UpdateAuth(ctx, a); clrErr != nil && s.Logger != nil {
				s.Logger.WithError(clrErr).WithField("email", a.Email).Error("failed to clear reset token after send failure")
			}
			return ErrMailDelivery
		}
		return nil
	}

	// Unknown email: act exactly like success so callers cannot probe which
	// addresses are registered.
	if s.Logger != nil {
		s.Logger.WithField("email", email).Info("password reset requested for unknown email")
	}
	return nil
}

// ResetPassword consumes a reset token. Tokens are single use: the matching
// row has its token cleared in the same write that stores the new hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if e, err := s.Employees.GetByResetToken(ctx, token); err == nil && e != nil {
		e.Password = hash
		e.ResetPasswordToken = nil
		e.ResetPasswordExpires = nil
		if err := s.Employees.UpdateAuth(ctx, e); err != nil {
			return err
		}
		s.sendConfirmation(ctx, e.Email, e.FirstName)
		return nil
	}

	if a, err := s.Admins.GetByResetToken(ctx, token); err == nil && a != nil {
		a.Password = hash
		a.ResetPasswordToken = nil
		a.ResetPasswordExpires = nil
		if err := s.Admins.UpdateAuth(ctx, a); err != nil {
			return err
		}
		s.sendConfirmation(ctx, a.Email, a.FirstName)
		return nil
	}

	return ErrInvalidResetToken
}

func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	e, err := s.Employees.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if e != nil {
		return true, nil
	}
	a, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return a != nil, nil
}

func (s *AuthService) issue(ctx context.Context, id, email, name, role string, e *entity.Employee, a *entity.Admin) (*LoginResult, error) {
	token, exp, err := s.JWT.Generate(id, email, role)
	if err != nil {
		return nil, err
	}
	s.writeSession(ctx, id, email, name, role, exp)
	return &LoginResult{Token: token, ExpiresAt: exp, Role: role, Employee: e, Admin: a}, nil
}

// writeSession records the login in Redis for the auth middleware. Redis
// being down must not block login, so failures are only logged.
func (s *AuthService) writeSession(ctx context.Context, id, email, name, role string, exp time.Time) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(id)
	fields := map[string]any{
		"user_id":    id,
		"email":      email,
		"name":       name,
		"role":       role,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, time.Until(exp))
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis session write failed")
	}
}

func (s *AuthService) sendReset(ctx context.Context, email, name, token string) error {
	return s.Notifier.Send(ctx, mailer.TemplatePasswordReset, email, map[string]any{
		"Name":        name,
		"CompanyName": s.CompanyName,
		"SupportURL":  s.SupportURL,
		"ResetURL":    s.ResetURL + "?token=" + token,
	})
}

// sendConfirmation is best-effort: the password change already happened, so a
// delivery failure is logged and swallowed.
func (s *AuthService) sendConfirmation(ctx context.Context, email, name string) {
	err := s.Notifier.Send(ctx, mailer.TemplatePasswordChanged, email, map[string]any{
		"Name":        name,
		"CompanyName": s.CompanyName,
		"SupportURL":  s.SupportURL,
		"Time":        time.Now().UTC().Format("02 January 2006, 15:04 MST"),
	})
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("password change confirmation email failed")
	}
}
