package impl

import (
	"context"
	"log/slog"
	"time"

	"zenlit/config"
	deliverycontext "zenlit/internal/delivery/context"
	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/domain/repository"
	"zenlit/internal/errors"
	"zenlit/internal/usecase"

	"github.com/google/uuid"
)

type locationService struct {
	logger       *slog.Logger
	precision    int
	locationRepo repository.LocationRepository
	anonymitySvc usecase.AnonymityUsecase
}

// NewLocationService creates a new location service instance
func NewLocationService(
	logger *slog.Logger,
	cfg *config.Config,
	locationRepo repository.LocationRepository,
	anonymitySvc usecase.AnonymityUsecase,
) usecase.LocationUsecase {
	precision := config.DefaultCoarsePrecision
	if cfg.Anonymity != nil && cfg.Anonymity.CoarsePrecision > 0 {
		precision = cfg.Anonymity.CoarsePrecision
	}

	return &locationService{
		logger:       logger,
		precision:    precision,
		locationRepo: locationRepo,
		anonymitySvc: anonymitySvc,
	}
}

// GetLocation returns the user's stored coarse location
func (s *locationService) GetLocation(ctx context.Context, userID uuid.UUID) (*entity.Location, error) {
	location, err := s.locationRepo.FindLocationByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find location")
	}
	if location == nil {
		return nil, domainerrors.ErrLocationNotFound
	}

	return location, nil
}

// UpdateLocation truncates the reported position and stores it
func (s *locationService) UpdateLocation(ctx context.Context, userID uuid.UUID, input *usecase.UpdateLocationInput) (*usecase.LocationUpdateResult, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	latShort := entity.Truncate(input.Latitude, s.precision)
	longShort := entity.Truncate(input.Longitude, s.precision)
	location := &entity.Location{
		UserID:    userID,
		LatShort:  &latShort,
		LongShort: &longShort,
		UpdatedAt: time.Now(),
	}

	if err := s.locationRepo.UpsertLocation(ctx, location); err != nil {
		return nil, errors.Wrap(err, "failed to upsert location")
	}

	return s.refresh(ctx, userID, location), nil
}

// ClearLocation stops sharing the user's location
func (s *locationService) ClearLocation(ctx context.Context, userID uuid.UUID) (*usecase.LocationUpdateResult, error) {
	if err := s.locationRepo.ClearLocation(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to clear location")
	}

	return s.refresh(ctx, userID, &entity.Location{UserID: userID, UpdatedAt: time.Now()}), nil
}

// refresh recalculates the user's conversations. The location is already stored, so a
// failure here is logged and left for the next full run.
func (s *locationService) refresh(ctx context.Context, userID uuid.UUID, location *entity.Location) *usecase.LocationUpdateResult {
	result := &usecase.LocationUpdateResult{Location: location}

	recalculation, err := s.anonymitySvc.RecalculateForUser(ctx, userID)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Failed to refresh conversation anonymity",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)

		return result
	}

	result.UpdatedConversations = recalculation.Updated

	return result
}
