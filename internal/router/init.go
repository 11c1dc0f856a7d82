package router

import (
	"github.com/subtrackhq/subtrack/internal/application"
	"github.com/subtrackhq/subtrack/internal/container"
	pginfra "github.com/subtrackhq/subtrack/internal/infrastructure/postgres"
	handlers "github.com/subtrackhq/subtrack/internal/interface/http"
	"github.com/subtrackhq/subtrack/internal/router/modules"
)

// InitModules wires repositories, services, and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	subRepo := pginfra.NewSubscriptionRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger, cfg.BcryptCost)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, logger)
	subSvc := application.NewSubscriptionService(
		subRepo,
		userRepo,
		container.GetRedis(),
		container.GetES(),
		cfg.ESSubscriptionsIndex,
		container.GetRabbitPub(),
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), userRepo))
	r.Add(modules.NewSubscriptionModule(handlers.NewSubscriptionHandler(subSvc, logger), userRepo))
}
