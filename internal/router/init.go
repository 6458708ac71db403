package router

import (
	appuser "github.com/arkadata/userhub/internal/application"
	"github.com/arkadata/userhub/internal/container"
	"github.com/arkadata/userhub/internal/infrastructure/messaging"
	pginfra "github.com/arkadata/userhub/internal/infrastructure/postgres"
	handlers "github.com/arkadata/userhub/internal/interface/http"
	"github.com/arkadata/userhub/internal/router/modules"
)

// InitModules assembles the concrete implementations, injects them into the
// domain service and registers every feature module. Called once during
// startup; this is the composition root.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	repo := pginfra.NewUserRepository(logger)
	txManager := pginfra.NewTxManager(pool)
	publisher := messaging.NewEventPublisher(container.GetRabbitPub(), logger)

	service := appuser.NewService(txManager, repo, publisher, logger)
	userHandler := handlers.NewUserHandler(service, logger)
	healthHandler := handlers.NewHealthHandler(pool)

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewHealthModule(healthHandler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
