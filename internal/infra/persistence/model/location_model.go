package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel is the GORM-specific struct for the 'locations' table.
// The primary key is the owning user's ID.
type LocationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	LatShort  *float64  `gorm:"column:lat_short;type:double precision"`
	LongShort *float64  `gorm:"column:long_short;type:double precision"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}
