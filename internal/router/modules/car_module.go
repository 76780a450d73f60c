package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"cars-api/internal/container"
	handlers "cars-api/internal/interface/http"
	"cars-api/internal/interface/middleware"
)

// CarModule wires the car routes. All of them are identity-scoped.
type CarModule struct {
	Handler *handlers.CarHandler
}

func NewCarModule(h *handlers.CarHandler) *CarModule {
	return &CarModule{Handler: h}
}

func (m *CarModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/cars")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByLogin(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/upload-photo", m.Handler.UploadPhoto)
	}
}
