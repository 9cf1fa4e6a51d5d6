package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/application"
	"github.com/kgnit/employee-tasks/pkg/response"
	"github.com/kgnit/employee-tasks/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerEmployeeRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

type registerAdminRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,adminpwd"`
	AdminKey  string `json:"adminKey" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  authUser(res.Admin, res.Employee),
	}, "login successful")
}

// RegisterEmployee POST /api/auth/register/employee
func (h *AuthHandler) RegisterEmployee(c *gin.Context) {
	var req registerEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.RegisterEmployee(c.Request.Context(), req.FirstName, req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"token": res.Token,
		"user":  authUser(nil, res.Employee),
	}, "employee registered successfully")
}

// RegisterAdmin POST /api/auth/register/admin
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req registerAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.RegisterAdmin(c.Request.Context(), req.FirstName, req.Email, req.Password, req.AdminKey)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"token": res.Token,
		"user":  authUser(res.Admin, nil),
	}, "admin registered successfully")
}

// ForgotPassword POST /api/auth/forgot-password
// The response is identical whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "if the email exists in our system, a password reset link has been sent")
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "password has been reset successfully, you can now log in with your new password")
}
