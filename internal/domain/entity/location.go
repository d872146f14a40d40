package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Location is the last coarse position a user shared.
// Coordinates are kept at reduced precision so an exact position is never stored.
// A nil coordinate means the user is not sharing that axis (typically both are nil together).
type Location struct {
	UserID    uuid.UUID // The user this location belongs to; one row per user.
	LatShort  *float64  // Truncated latitude, nil when not shared.
	LongShort *float64  // Truncated longitude, nil when not shared.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// Usable reports whether the location can take part in a proximity check.
func (l *Location) Usable() bool {
	return l != nil && l.LatShort != nil && l.LongShort != nil
}

// Point returns the location as an orb point (longitude, latitude).
// It must only be called on a usable location.
func (l *Location) Point() orb.Point {
	return orb.Point{*l.LongShort, *l.LatShort}
}

// Truncate drops every decimal beyond precision, rounding toward zero.
func Truncate(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))

	return math.Trunc(value*factor) / factor
}
