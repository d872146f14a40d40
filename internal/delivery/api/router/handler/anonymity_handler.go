package handler

import (
	"log/slog"

	"zenlit/internal/delivery/api/response"
	deliverycontext "zenlit/internal/delivery/context"
	"zenlit/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnonymityHandlerParams holds dependencies for AnonymityHandler, injected by Fx.
type AnonymityHandlerParams struct {
	fx.In

	AnonymityUC usecase.AnonymityUsecase
	Logger      *slog.Logger
}

// AnonymityHandler exposes the recalculator as a function endpoint.
type AnonymityHandler struct {
	anonymityUC usecase.AnonymityUsecase
	logger      *slog.Logger
}

// NewAnonymityHandler is the constructor for AnonymityHandler
func NewAnonymityHandler(params AnonymityHandlerParams) *AnonymityHandler {
	return &AnonymityHandler{
		anonymityUC: params.AnonymityUC,
		logger:      params.Logger,
	}
}

// UpdateAnonymity runs a full recalculation. Any method is accepted; preflight requests
// never reach this handler.
func (h *AnonymityHandler) UpdateAnonymity(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.anonymityUC.RecalculateAll(ctx)
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(ctx, h.logger).Info("Anonymity update triggered",
		slog.String("method", c.Request().Method),
		slog.Int("updated", result.Updated),
	)

	return response.FunctionSuccess(c, result.Updated)
}
