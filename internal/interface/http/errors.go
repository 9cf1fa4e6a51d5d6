package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/internal/application"
	"github.com/kgnit/employee-tasks/pkg/response"
)

// fail maps service errors onto HTTP statuses. Unexpected errors are logged
// with the request id and answered with a generic message only.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidAdminKey):
		response.Fail(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrEmployeeNotFound),
		errors.Is(err, application.ErrTaskNotFound):
		response.Fail(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrInvalidResetToken):
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrMailDelivery):
		response.Fail(c, http.StatusInternalServerError, "failed to send password reset email, please try again later", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		}
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
	}
}
