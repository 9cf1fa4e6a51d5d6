package entity

import "time"

// TaskCounts is the denormalized per-employee tally of tasks by status.
// It is a projection of the task list, recomputed after every task write,
// and never independently authoritative.
type TaskCounts struct {
	Active    int `json:"active"`
	NewTask   int `json:"newTask"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// CountTasks recomputes the projection from a task list.
func CountTasks(tasks []Task) TaskCounts {
	var c TaskCounts
	for _, t := range tasks {
		switch t.Status {
		case StatusActive:
			c.Active++
		case StatusNew:
			c.NewTask++
		case StatusCompleted:
			c.Completed++
		case StatusFailed:
			c.Failed++
		}
	}
	return c
}

// Employee is the aggregate root for the employee domain.
// Password holds a bcrypt hash.
type Employee struct {
	ID                   string
	FirstName            string
	Email                string
	Password             string
	Role                 string
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	TaskCounts           TaskCounts
	Tasks                []Task
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

const RoleEmployee = "employee"
