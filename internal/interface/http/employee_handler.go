package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/application"
	"github.com/kgnit/employee-tasks/internal/domain/entity"
	"github.com/kgnit/employee-tasks/internal/interface/middleware"
	"github.com/kgnit/employee-tasks/pkg/response"
	"github.com/kgnit/employee-tasks/pkg/validation"
)

type EmployeeHandler struct {
	Employees *application.EmployeeService
	Tasks     *application.TaskService
	Logger    *logrus.Logger
}

func NewEmployeeHandler(employees *application.EmployeeService, tasks *application.TaskService, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees, Tasks: tasks, Logger: logger}
}

// Flags omitted from the payload default to false, so a request naming only
// the stage it wants reads as that single intent.
type updateOwnTaskRequest struct {
	NewTask   bool `json:"newTask"`
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
	Failed    bool `json:"failed"`
}

// Profile GET /api/employee/profile
func (h *EmployeeHandler) Profile(c *gin.Context) {
	e, err := h.Employees.Profile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, employeeView(e), "profile retrieved")
}

// UpdateTask PATCH /api/employee/tasks/:taskId
// Only tasks owned by the caller can be updated; anyone else's task id
// answers 404.
func (h *EmployeeHandler) UpdateTask(c *gin.Context) {
	var req updateOwnTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tasks.SelfSetStatus(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("taskId"), entity.StatusFlags{
		NewTask:   req.NewTask,
		Active:    req.Active,
		Completed: req.Completed,
		Failed:    req.Failed,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, taskView(t), "task updated successfully")
}
