package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arkadata/userhub/internal/container"
	"github.com/arkadata/userhub/internal/interface/middleware"
)

// DebugModule serves runtime metrics via expvar. Rate limited per IP,
// with a bypass for callers on private ranges.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
