package handler

import (
	"log/slog"
	"net/http"
	"time"

	"zenlit/internal/delivery/api/middleware"
	"zenlit/internal/delivery/api/response"
	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler handles the caller's own coarse location
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// UpdateLocationRequest represents the request body for sharing a location.
// Pointers keep 0 distinguishable from a missing field.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,lat"`
	Longitude *float64 `json:"longitude" validate:"required,lng"`
}

// LocationResponse is the stored coarse location
type LocationResponse struct {
	LatShort  *float64  `json:"lat_short"`
	LongShort *float64  `json:"long_short"`
	Sharing   bool      `json:"sharing"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationUpdateResponse adds how many conversations changed anonymity
type LocationUpdateResponse struct {
	Location             LocationResponse `json:"location"`
	UpdatedConversations int              `json:"updated_conversations"`
}

// GetMyLocation returns the caller's stored location
func (h *LocationHandler) GetMyLocation(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	location, err := h.locationUC.GetLocation(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toLocationResponse(location))
}

// UpdateMyLocation stores a new coarse location and refreshes the caller's conversations
func (h *LocationHandler) UpdateMyLocation(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	result, err := h.locationUC.UpdateLocation(c.Request().Context(), userID, &usecase.UpdateLocationInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toLocationUpdateResponse(result))
}

// ClearMyLocation stops sharing the caller's location
func (h *LocationHandler) ClearMyLocation(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	result, err := h.locationUC.ClearLocation(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toLocationUpdateResponse(result))
}

func toLocationResponse(location *entity.Location) LocationResponse {
	return LocationResponse{
		LatShort:  location.LatShort,
		LongShort: location.LongShort,
		Sharing:   location.Usable(),
		UpdatedAt: location.UpdatedAt,
	}
}

func toLocationUpdateResponse(result *usecase.LocationUpdateResult) LocationUpdateResponse {
	return LocationUpdateResponse{
		Location:             toLocationResponse(result.Location),
		UpdatedConversations: result.UpdatedConversations,
	}
}
