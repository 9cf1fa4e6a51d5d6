package entity

import "time"

// Admin has identity and reset-token fields only; admins own no tasks.
type Admin struct {
	ID                   string
	FirstName            string
	Email                string
	Password             string
	Role                 string
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

const RoleAdmin = "admin"
