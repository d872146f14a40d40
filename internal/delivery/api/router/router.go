// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"zenlit/config"
	"zenlit/internal/delivery/api/middleware"
	"zenlit/internal/delivery/api/router/handler"
	"zenlit/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FunctionsPrefix is the path prefix of function endpoints.
const FunctionsPrefix = "/functions/v1"

type RouterParams struct {
	fx.In

	AnonymityHandler *handler.AnonymityHandler
	LocationHandler  *handler.LocationHandler
	HealthHandler    *handler.HealthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	anonymityHandler *handler.AnonymityHandler
	locationHandler  *handler.LocationHandler
	healthHandler    *handler.HealthHandler
	authMiddleware   *middleware.AuthMiddleware
	config           *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		anonymityHandler: params.AnonymityHandler,
		locationHandler:  params.LocationHandler,
		healthHandler:    params.HealthHandler,
		authMiddleware:   params.AuthMiddleware,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	// Function endpoints answer preflight themselves, so echo's CORS middleware (204) is not used here.
	functions := e.Group(FunctionsPrefix, middleware.FunctionCORS, middleware.FunctionErrors)
	if r.config.Anonymity != nil && r.config.Anonymity.RequireServiceRole {
		functions.Use(r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleService))
	}
	functions.Any("/update-anonymity", r.anonymityHandler.UpdateAnonymity)

	apiV1 := e.Group("/api/v1", r.authMiddleware.Authenticate)

	locationsGroup := apiV1.Group("/locations")
	{
		locationsGroup.GET("/me", r.locationHandler.GetMyLocation)
		locationsGroup.PUT("/me", r.locationHandler.UpdateMyLocation)
		locationsGroup.DELETE("/me", r.locationHandler.ClearMyLocation)
	}
}
