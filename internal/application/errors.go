package application

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary. Anything
// else bubbling out of a service is treated as an internal error: logged
// server-side, generic message to the caller.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidAdminKey    = errors.New("invalid admin registration key")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or has expired")
	ErrMailDelivery       = errors.New("failed to send password reset email")
)
