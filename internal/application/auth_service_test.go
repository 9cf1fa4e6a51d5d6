package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/infrastructure/memory"
	"github.com/kgnit/employee-tasks/pkg/helpers"
)

type sentMail struct {
	Template string
	To       string
	Data     map[string]any
}

// fakeNotifier records outbound jobs and can simulate a broker outage.
type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, template, to string, data map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{Template: template, To: to, Data: data})
	return nil
}

func newAuthFixture(t *testing.T) (*memory.Store, *AuthService, *fakeNotifier) {
	t.Helper()
	store := memory.New()
	notifier := &fakeNotifier{}
	svc := &AuthService{
		Employees:   store.Employees(),
		Admins:      store.Admins(),
		JWT:         helpers.NewJWTManager("test-secret", time.Hour),
		Notifier:    notifier,
		AdminKey:    "ADMIN_SECRET_2025",
		ResetTTL:    time.Hour,
		ResetURL:    "http://localhost:5174/reset-password",
		CompanyName: "KGN IT Solutions",
	}
	return store, svc, notifier
}

func TestRegisterAndLoginEmployee(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.RegisterEmployee(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)
	require.NotNil(t, reg.Employee)
	assert.Equal(t, entity.RoleEmployee, reg.Role)
	assert.NotEmpty(t, reg.Token)

	res, err := svc.Login(ctx, "e@e.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, res.Role)
	require.NotNil(t, res.Employee)
	assert.Nil(t, res.Admin)

	claims, err := svc.JWT.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Employee.ID, claims.UserID)
	assert.Equal(t, entity.RoleEmployee, claims.Role)

	_, err = svc.Login(ctx, "e@e.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@e.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterAdminRequiresKey(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, "Admin", "admin@me.com", "secretpass", "wrong-key")
	assert.ErrorIs(t, err, ErrInvalidAdminKey)

	reg, err := svc.RegisterAdmin(ctx, "Admin", "admin@me.com", "secretpass", "ADMIN_SECRET_2025")
	require.NoError(t, err)
	require.NotNil(t, reg.Admin)
	assert.Equal(t, entity.RoleAdmin, reg.Role)

	res, err := svc.Login(ctx, "admin@me.com", "secretpass")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)
}

// Email uniqueness spans both identity kinds.
func TestEmailUniqueAcrossRoles(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterEmployee(ctx, "Ruhith", "shared@e.com", "123456")
	require.NoError(t, err)

	_, err = svc.RegisterAdmin(ctx, "Admin", "shared@e.com", "secretpass", "ADMIN_SECRET_2025")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.RegisterEmployee(ctx, "Other", "shared@e.com", "123456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	_, svc, notifier := newAuthFixture(t)

	err := svc.ForgotPassword(context.Background(), "nobody@e.com")
	assert.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestForgotAndResetPassword(t *testing.T) {
	store, svc, notifier := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.RegisterEmployee(ctx, "Ruhith", "e@e.com", "oldpass")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "e@e.com"))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "password_reset", notifier.sent[0].Template)
	assert.Equal(t, "e@e.com", notifier.sent[0].To)
	assert.Contains(t, notifier.sent[0].Data["ResetURL"], "?token=")

	stored, err := store.Employees().GetByID(ctx, reg.Employee.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)
	token := *stored.ResetPasswordToken

	require.NoError(t, svc.ResetPassword(ctx, token, "newpass"))

	_, err = svc.Login(ctx, "e@e.com", "oldpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "e@e.com", "newpass")
	assert.NoError(t, err)

	// token is single use
	err = svc.ResetPassword(ctx, token, "again")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// and the change triggered a confirmation email
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "password_changed", notifier.sent[1].Template)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	store, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.RegisterEmployee(ctx, "Ruhith", "e@e.com", "oldpass")
	require.NoError(t, err)

	token := "expired-token"
	past := time.Now().Add(-time.Minute)
	e, err := store.Employees().GetByID(ctx, reg.Employee.ID)
	require.NoError(t, err)
	e.ResetPasswordToken = &token
	e.ResetPasswordExpires = &past
	require.NoError(t, store.Employees().UpdateAuth(ctx, e))

	err = svc.ResetPassword(ctx, token, "newpass")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// old password still works
	_, err = svc.Login(ctx, "e@e.com", "oldpass")
	assert.NoError(t, err)
}

func TestResetPasswordBogusToken(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	err := svc.ResetPassword(context.Background(), "no-such-token", "newpass")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// When the email job cannot be handed to the broker the stored token is
// cleared again, so no dangling reset link survives the failure.
func TestForgotPasswordPublishFailureRollsBackToken(t *testing.T) {
	store, svc, notifier := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.RegisterEmployee(ctx, "Ruhith", "e@e.com", "123456")
	require.NoError(t, err)

	notifier.err = errors.New("broker down")
	err = svc.ForgotPassword(ctx, "e@e.com")
	assert.ErrorIs(t, err, ErrMailDelivery)

	stored, err := store.Employees().GetByID(ctx, reg.Employee.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpires)
}

func TestForgotPasswordAdmin(t *testing.T) {
	_, svc, notifier := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, "Admin", "admin@me.com", "secretpass", "ADMIN_SECRET_2025")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "admin@me.com"))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "admin@me.com", notifier.sent[0].To)
}
