package entity

import "time"

// Task is owned by exactly one employee. It holds a single Status value, so a
// persisted task can never carry more than one true flag; only rows written
// by older deployments can, and the bulk repair operation fixes those.
type Task struct {
	ID          string
	EmployeeID  string
	Title       string
	Description string
	Date        string // stored as text, matching the original data
	Category    string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskWithOwner annotates a task with its owning employee, used by the admin
// flattened task listing.
type TaskWithOwner struct {
	Task
	OwnerName  string
	OwnerEmail string
}

// TaskFlagsRow is a task row as stored, with raw status flags. Input to the
// bulk repair routine.
type TaskFlagsRow struct {
	TaskID     string
	EmployeeID string
	Flags      StatusFlags
}
