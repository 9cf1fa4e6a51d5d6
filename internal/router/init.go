package router

import (
	"github.com/kgnit/employee-tasks/internal/application"
	"github.com/kgnit/employee-tasks/internal/container"
	pginfra "github.com/kgnit/employee-tasks/internal/infrastructure/postgres"
	handlers "github.com/kgnit/employee-tasks/internal/interface/http"
	"github.com/kgnit/employee-tasks/internal/router/modules"
)

type moduleDeps struct {
	Auth      *application.AuthService
	Employees *application.EmployeeService
	Tasks     *application.TaskService
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	employeeRepo := pginfra.NewEmployeeRepository(pool)
	adminRepo := pginfra.NewAdminRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)

	auth := &application.AuthService{
		Employees:   employeeRepo,
		Admins:      adminRepo,
		JWT:         container.GetJWT(),
		Redis:       container.GetRedis(),
		Notifier:    container.Notifier(),
		Logger:      container.GetLogger(),
		AdminKey:    cfg.AdminRegistrationKey,
		ResetTTL:    cfg.ResetTokenTTL,
		ResetURL:    cfg.ResetPasswordURL,
		CompanyName: cfg.CompanyName,
		SupportURL:  cfg.SupportURL,
	}

	employees := &application.EmployeeService{
		Employees: employeeRepo,
		Admins:    adminRepo,
		Logger:    container.GetLogger(),
	}

	tasks := &application.TaskService{
		Employees: employeeRepo,
		Tasks:     taskRepo,
		Logger:    container.GetLogger(),
	}

	return moduleDeps{Auth: auth, Employees: employees, Tasks: tasks}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger)))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(deps.Employees, deps.Tasks, logger), jwt))
	r.Add(modules.NewEmployeeModule(handlers.NewEmployeeHandler(deps.Employees, deps.Tasks, logger), jwt))
}
