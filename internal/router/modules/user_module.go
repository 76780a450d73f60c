package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"cars-api/internal/container"
	handlers "cars-api/internal/interface/http"
	"cars-api/internal/interface/middleware"
)

// UserModule wires the user routes.
// Public: POST /api/users (registration), POST /api/signin.
// Everything else requires a resolved identity.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signin", signInLimiter, m.Handler.SignIn)
	rg.POST("/users", registerLimiter, m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByLogin(), nil))
	{
		auth.GET("/users", m.Handler.List)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/users/:id", m.Handler.Get)
		auth.PUT("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)
		auth.POST("/users/:id/upload-photo", m.Handler.UploadPhoto)
	}
}
