package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them under /api in one pass,
// so route registration order lives in a single place.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	registered  bool
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware applied to the whole API group before any module routes.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts the collected middleware and modules. Calling it twice
// is a no-op; gin would panic on duplicate routes otherwise.
func (r *Registry) RegisterAll() {
	if r.registered {
		return
	}
	r.registered = true
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
