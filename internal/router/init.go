package router

import (
	"cars-api/internal/application"
	"cars-api/internal/container"
	pginfra "cars-api/internal/infrastructure/postgres"
	handlers "cars-api/internal/interface/http"
	"cars-api/internal/interface/middleware"
	"cars-api/internal/router/modules"
)

// InitModules builds the repositories, services, and handlers from container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	carRepo := pginfra.NewCarRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		userRepo,
		carRepo,
		container.GetJWT(),
		container.GetPhotos(),
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESUsersIndex,
	)
	carSvc := application.NewCarService(
		userRepo,
		carRepo,
		container.GetPhotos(),
		container.GetRedis(),
		container.GetLogger(),
	)

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	carHandler := handlers.NewCarHandler(carSvc, container.GetLogger())

	// Identity runs on every /api request; route groups opt into RequireAuth.
	r.Use(middleware.Identity(container.GetJWT(), userRepo))

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewCarModule(carHandler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
