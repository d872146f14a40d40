package postgres

import (
	"context"
	"time"

	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/domain/repository"
	"zenlit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// locationRepository implements the repository.LocationRepository interface.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{
		db: db,
	}
}

// FindLocationByUserID returns nil without an error when the user has no row.
func (repo *locationRepository) FindLocationByUserID(ctx context.Context, userID uuid.UUID) (*entity.Location, error) {
	var locationM model.LocationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", userID).
		Limit(1).
		Find(&locationM).Error; err != nil {
		return nil, wrapQueryError(err, "failed to find location by user ID")
	}

	if locationM.ID == uuid.Nil {
		return nil, nil
	}

	return toLocationDomain(&locationM), nil
}

// UpsertLocation inserts or replaces the user's coarse coordinates.
func (repo *locationRepository) UpsertLocation(ctx context.Context, location *entity.Location) error {
	locationM := fromLocationDomain(location)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"lat_short", "long_short", "updated_at"}),
		}).
		Create(locationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown user")
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidCoordinates.WrapMessage(err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert location")
	}

	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// ClearLocation nulls both coordinates, keeping the row.
func (repo *locationRepository) ClearLocation(ctx context.Context, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LocationModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"lat_short":  gorm.Expr("NULL"),
			"long_short": gorm.Expr("NULL"),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear location")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	return nil
}

func fromLocationDomain(data *entity.Location) *model.LocationModel {
	if data == nil {
		return nil
	}

	return &model.LocationModel{
		ID:        data.UserID,
		LatShort:  data.LatShort,
		LongShort: data.LongShort,
		UpdatedAt: data.UpdatedAt,
	}
}

func toLocationDomain(data *model.LocationModel) *entity.Location {
	if data == nil {
		return nil
	}

	return &entity.Location{
		UserID:    data.ID,
		LatShort:  data.LatShort,
		LongShort: data.LongShort,
		UpdatedAt: data.UpdatedAt,
	}
}
