package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"zenlit/internal/delivery/api/response"
	deliverycontext "zenlit/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Database HealthChecker `name:"database" optional:"true"`
	Logger   *slog.Logger
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	database HealthChecker
	logger   *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		database: params.Database,
		logger:   params.Logger,
	}
}

// HealthCheck answers 200 when the database responds and 503 otherwise
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status := map[string]string{"status": "ok", "database": "unchecked"}
	if h.database == nil {
		return response.Success(c, http.StatusOK, status)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.database(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Health check failed", slog.Any("error", err))
		status["status"] = "degraded"
		status["database"] = "unreachable"

		return response.Success(c, http.StatusServiceUnavailable, status)
	}
	status["database"] = "ok"

	return response.Success(c, http.StatusOK, status)
}
