package repository

import (
	"context"

	"zenlit/internal/domain/entity"
	"zenlit/internal/errors"

	"github.com/google/uuid"
)

// ErrLocationNotFound is returned when a user has no location row.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepository defines the interface for the per-user coarse location store.
type LocationRepository interface {
	// FindLocationByUserID returns the user's location row, or nil without error when the
	// user never shared one.
	FindLocationByUserID(ctx context.Context, userID uuid.UUID) (*entity.Location, error)

	// UpsertLocation creates or replaces the user's location row.
	UpsertLocation(ctx context.Context, location *entity.Location) error

	// ClearLocation nulls both coordinates. Returns ErrLocationNotFound when no row exists.
	ClearLocation(ctx context.Context, userID uuid.UUID) error
}
