package usecase

import (
	"context"

	"zenlit/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateLocationInput represents a precise position reported by the app
type UpdateLocationInput struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

// LocationUpdateResult is the stored coarse location plus the effect on the user's conversations
type LocationUpdateResult struct {
	Location             *entity.Location
	UpdatedConversations int
}

// LocationUsecase defines the interface for coarse location management use cases
type LocationUsecase interface {
	// GetLocation returns the user's stored coarse location
	GetLocation(ctx context.Context, userID uuid.UUID) (*entity.Location, error)

	// UpdateLocation coarsens and stores the position, then refreshes the user's conversations
	UpdateLocation(ctx context.Context, userID uuid.UUID, input *UpdateLocationInput) (*LocationUpdateResult, error)

	// ClearLocation stops sharing the user's location, then refreshes the user's conversations
	ClearLocation(ctx context.Context, userID uuid.UUID) (*LocationUpdateResult, error)
}
