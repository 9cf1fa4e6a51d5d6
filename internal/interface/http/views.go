package handlers

import (
	"time"

	"github.com/kgnit/employee-tasks/internal/domain/entity"
)

// TaskView is the wire representation of a task. The status is expanded into
// the four boolean flags older clients read, alongside the taskStatus string.
type TaskView struct {
	ID              string `json:"id"`
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription"`
	TaskDate        string `json:"taskDate"`
	Category        string `json:"category"`
	NewTask         bool   `json:"newTask"`
	Active          bool   `json:"active"`
	Completed       bool   `json:"completed"`
	Failed          bool   `json:"failed"`
	TaskStatus      string `json:"taskStatus"`
}

// AdminTaskView annotates a task with its owner for the admin listing.
type AdminTaskView struct {
	TaskView
	AssignedTo      string `json:"assignedTo"`
	AssignedToName  string `json:"assignedToName"`
	AssignedToEmail string `json:"assignedToEmail"`
}

// EmployeeView is an employee without the password hash.
type EmployeeView struct {
	ID         string            `json:"id"`
	FirstName  string            `json:"firstName"`
	Email      string            `json:"email"`
	Role       string            `json:"role"`
	TaskCounts entity.TaskCounts `json:"taskCounts"`
	Tasks      []TaskView        `json:"tasks"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func taskView(t *entity.Task) TaskView {
	f := t.Status.Flags()
	return TaskView{
		ID:              t.ID,
		TaskTitle:       t.Title,
		TaskDescription: t.Description,
		TaskDate:        t.Date,
		Category:        t.Category,
		NewTask:         f.NewTask,
		Active:          f.Active,
		Completed:       f.Completed,
		Failed:          f.Failed,
		TaskStatus:      t.Status.String(),
	}
}

func taskViews(tasks []entity.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskView(&tasks[i]))
	}
	return out
}

func adminTaskView(t *entity.TaskWithOwner) AdminTaskView {
	return AdminTaskView{
		TaskView:        taskView(&t.Task),
		AssignedTo:      t.EmployeeID,
		AssignedToName:  t.OwnerName,
		AssignedToEmail: t.OwnerEmail,
	}
}

func employeeView(e *entity.Employee) EmployeeView {
	return EmployeeView{
		ID:         e.ID,
		FirstName:  e.FirstName,
		Email:      e.Email,
		Role:       e.Role,
		TaskCounts: e.TaskCounts,
		Tasks:      taskViews(e.Tasks),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// authUser is the user object returned by login and registration.
func authUser(admin *entity.Admin, emp *entity.Employee) map[string]any {
	if admin != nil {
		return map[string]any{
			"id":        admin.ID,
			"email":     admin.Email,
			"role":      admin.Role,
			"firstName": admin.FirstName,
		}
	}
	return map[string]any{
		"id":         emp.ID,
		"email":      emp.Email,
		"role":       emp.Role,
		"firstName":  emp.FirstName,
		"taskCounts": emp.TaskCounts,
		"tasks":      taskViews(emp.Tasks),
	}
}
