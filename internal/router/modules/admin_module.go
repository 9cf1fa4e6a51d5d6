package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kgnit/employee-tasks/internal/container"
	"github.com/kgnit/employee-tasks/internal/domain/entity"
	handlers "github.com/kgnit/employee-tasks/internal/interface/http"
	"github.com/kgnit/employee-tasks/internal/interface/middleware"
	"github.com/kgnit/employee-tasks/pkg/helpers"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/dashboard", m.Handler.Dashboard)

		admin.GET("/employees", m.Handler.ListEmployees)
		admin.POST("/employees", m.Handler.CreateEmployee)
		admin.DELETE("/employees/:id", m.Handler.DeleteEmployee)
		admin.POST("/employees/:id/tasks", m.Handler.AssignTask)

		admin.GET("/tasks", m.Handler.ListTasks)
		admin.PUT("/tasks/:taskId", m.Handler.UpdateTaskStatus)
		admin.DELETE("/tasks/:taskId", m.Handler.DeleteTask)
		admin.POST("/migrate-tasks", m.Handler.MigrateTasks)
		// aliases kept for clients on the newer resource-style paths
		admin.PATCH("/tasks/:taskId/status", m.Handler.UpdateTaskStatus)
		admin.POST("/tasks/migrate", m.Handler.MigrateTasks)
	}
}
