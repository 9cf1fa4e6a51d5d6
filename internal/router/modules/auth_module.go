package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kgnit/employee-tasks/internal/container"
	handlers "github.com/kgnit/employee-tasks/internal/interface/http"
	"github.com/kgnit/employee-tasks/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/register/employee", registerLimiter, m.Handler.RegisterEmployee)
	rg.POST("/auth/register/admin", registerLimiter, m.Handler.RegisterAdmin)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/reset-password", resetLimiter, m.Handler.ResetPassword)
}
