package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"cars-api/internal/container"
	"cars-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Metrics endpoint (expvar), rate-limited per IP; private networks bypass
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
