package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/arkadata/userhub/internal/interface/http"
)

// HealthModule exposes liveness and readiness probes. Not rate limited;
// orchestrators poll these aggressively.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Live)
	rg.GET("/health/ready", m.Handler.Ready)
}
