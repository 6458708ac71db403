package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arkadata/userhub/internal/container"
	handlers "github.com/arkadata/userhub/internal/interface/http"
	"github.com/arkadata/userhub/internal/interface/middleware"
)

// UserModule wires the user CRUD endpoints under /api/users.
// Mutations get a tighter per-IP budget than reads.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil)
	writeLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	{
		users.GET("", readLimiter, m.Handler.ListUsers)
		users.GET("/:userId", readLimiter, m.Handler.GetUser)
		users.POST("", writeLimiter, m.Handler.CreateUser)
		users.PATCH("/:userId", writeLimiter, m.Handler.PatchUser)
		users.DELETE("/:userId", writeLimiter, m.Handler.DeleteUser)
	}
}
