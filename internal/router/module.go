package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, admin, employee) that knows how to mount
// its own routes on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
