package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/application"
	"github.com/kgnit/employee-tasks/pkg/response"
	"github.com/kgnit/employee-tasks/pkg/validation"
)

type AdminHandler struct {
	Employees *application.EmployeeService
	Tasks     *application.TaskService
	Logger    *logrus.Logger
}

func NewAdminHandler(employees *application.EmployeeService, tasks *application.TaskService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Employees: employees, Tasks: tasks, Logger: logger}
}

type createEmployeeRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

type assignTaskRequest struct {
	TaskTitle       string `json:"taskTitle" binding:"required"`
	TaskDescription string `json:"taskDescription" binding:"required"`
	TaskDate        string `json:"taskDate" binding:"required"`
	Category        string `json:"category" binding:"required"`
}

type updateTaskStatusRequest struct {
	TaskStatus string `json:"taskStatus" binding:"required"`
}

// ListEmployees GET /api/admin/employees
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	views := make([]EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, employeeView(e))
	}
	response.JSON(c, http.StatusOK, views, "employees retrieved")
}

// CreateEmployee POST /api/admin/employees
func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Employees.Create(c.Request.Context(), req.FirstName, req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, employeeView(e), "employee created successfully")
}

// DeleteEmployee DELETE /api/admin/employees/:id
// Deleting an employee removes their tasks with them.
func (h *AdminHandler) DeleteEmployee(c *gin.Context) {
	if err := h.Employees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "employee deleted successfully")
}

// Dashboard GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Employees.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, "dashboard stats retrieved")
}

// AssignTask POST /api/admin/employees/:id/tasks
func (h *AdminHandler) AssignTask(c *gin.Context) {
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tasks.Assign(c.Request.Context(), c.Param("id"), application.AssignTaskInput{
		Title:       req.TaskTitle,
		Description: req.TaskDescription,
		Date:        req.TaskDate,
		Category:    req.Category,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, taskView(t), "task assigned successfully")
}

// ListTasks GET /api/admin/tasks
func (h *AdminHandler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.ListAll(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	views := make([]AdminTaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, adminTaskView(&tasks[i]))
	}
	response.JSON(c, http.StatusOK, views, "tasks retrieved")
}

// UpdateTaskStatus PATCH /api/admin/tasks/:taskId/status
func (h *AdminHandler) UpdateTaskStatus(c *gin.Context) {
	var req updateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tasks.AdminSetStatus(c.Request.Context(), c.Param("taskId"), req.TaskStatus)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, taskView(t), "task status updated")
}

// DeleteTask DELETE /api/admin/tasks/:taskId
func (h *AdminHandler) DeleteTask(c *gin.Context) {
	if err := h.Tasks.Delete(c.Request.Context(), c.Param("taskId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "task deleted successfully")
}

// MigrateTasks POST /api/admin/tasks/migrate
// Repairs stored tasks whose boolean status flags drifted out of mutual
// exclusivity and reports how many employees were touched.
func (h *AdminHandler) MigrateTasks(c *gin.Context) {
	updated, err := h.Tasks.Migrate(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updatedCount": updated}, "task migration completed")
}
