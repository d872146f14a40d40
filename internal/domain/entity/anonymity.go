package entity

import (
	"math"

	"github.com/paulmach/orb/geo"
)

// DefaultNearbyThreshold is the per-axis degree difference at or below which two users are nearby.
const DefaultNearbyThreshold = 0.01

// nearbyTolerance absorbs float64 subtraction error so a difference of exactly the
// threshold between stored coordinates (e.g. 12.90 and 12.91) still counts as nearby.
const nearbyTolerance = 1e-9

// AnonymityPolicy decides whether two participants stay anonymous to each other.
// Proximity is an independent per-axis comparison, not a geodesic distance.
type AnonymityPolicy struct {
	Threshold float64
}

// NewAnonymityPolicy returns a policy with the given threshold, falling back to the default.
func NewAnonymityPolicy(threshold float64) AnonymityPolicy {
	if threshold <= 0 {
		threshold = DefaultNearbyThreshold
	}

	return AnonymityPolicy{Threshold: threshold}
}

// IsNearby reports whether both axis differences are within the threshold (inclusive).
// Both locations must be usable.
func (p AnonymityPolicy) IsNearby(a, b *Location) bool {
	latDiff := math.Abs(*a.LatShort - *b.LatShort)
	longDiff := math.Abs(*a.LongShort - *b.LongShort)

	limit := p.Threshold + nearbyTolerance

	return latDiff <= limit && longDiff <= limit
}

// Target returns the anonymity both flags should hold for a pair of participants.
// Anonymous unless both locations are usable and nearby.
func (p AnonymityPolicy) Target(a, b *Location) bool {
	if !a.Usable() || !b.Usable() {
		return true
	}

	return !p.IsNearby(a, b)
}

// ApproxDistanceMeters is the geodesic distance between two usable locations.
// Only used for diagnostics.
func ApproxDistanceMeters(a, b *Location) float64 {
	return geo.Distance(a.Point(), b.Point())
}
