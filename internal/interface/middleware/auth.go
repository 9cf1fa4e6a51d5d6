package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kgnit/employee-tasks/pkg/helpers"
	"github.com/kgnit/employee-tasks/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
	CtxEmailKey  = "userEmail"
)

// Auth validates the bearer token from the Authorization header and, when a
// Redis client is configured, checks that a session record still exists for
// the caller. On success it sets userID, userRole, and userEmail in the Gin
// context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if rdb != nil {
			key := helpers.SessionKey(claims.UserID)
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
				return
			}
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

// RequireRole gates a route group to callers whose token carries the role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != role {
			resp := response.Error[any](c, http.StatusForbidden, "access denied", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
