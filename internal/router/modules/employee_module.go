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

type EmployeeModule struct {
	Handler *handlers.EmployeeHandler
	JWT     *helpers.JWTManager
}

func NewEmployeeModule(h *handlers.EmployeeHandler, jwt *helpers.JWTManager) *EmployeeModule {
	return &EmployeeModule{Handler: h, JWT: jwt}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	emp := rg.Group("/employee")
	emp.Use(middleware.Auth(container.GetRedis(), m.JWT))
	emp.Use(middleware.RequireRole(entity.RoleEmployee))
	emp.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		emp.GET("/profile", m.Handler.Profile)
		emp.PUT("/task/:taskId", m.Handler.UpdateTask)
		// alias kept for clients that migrated to the plural form
		emp.PATCH("/tasks/:taskId", m.Handler.UpdateTask)
	}
}
