package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func at(lat, long float64) *Location {
	return &Location{UserID: uuid.New(), LatShort: &lat, LongShort: &long}
}

func TestAnonymityPolicy_Target(t *testing.T) {
	policy := NewAnonymityPolicy(0)
	lat := 12.9

	tests := []struct {
		name string
		a, b *Location
		want bool
	}{
		{name: "nearby pair", a: at(12.90, 77.50), b: at(12.905, 77.505), want: false},
		{name: "same cell", a: at(1, 1), b: at(1, 1), want: false},
		{name: "threshold is inclusive", a: at(0, 0), b: at(0.01, -0.01), want: false},
		{name: "latitude past threshold", a: at(0, 0), b: at(0.0101, 0), want: true},
		{name: "longitude past threshold", a: at(0, 0), b: at(0, 0.0101), want: true},
		{name: "threshold at real coordinates", a: at(12.90, 77.50), b: at(12.91, 77.51), want: false},
		{name: "threshold at truncated coordinates", a: at(12.971, 77.594), b: at(12.981, 77.604), want: false},
		{name: "threshold in the southern hemisphere", a: at(-33.868, 151.209), b: at(-33.878, 151.199), want: false},
		{name: "one step past threshold at real coordinates", a: at(12.971, 77.594), b: at(12.982, 77.594), want: true},
		{name: "far apart", a: at(12.90, 77.50), b: at(40.71, -74.00), want: true},
		{name: "missing row", a: nil, b: at(1, 1), want: true},
		{name: "both missing", a: nil, b: nil, want: true},
		{name: "null longitude", a: &Location{LatShort: &lat}, b: at(12.9, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Target(tt.a, tt.b))
			assert.Equal(t, tt.want, policy.Target(tt.b, tt.a), "policy is symmetric")
		})
	}
}

func TestNewAnonymityPolicy_Threshold(t *testing.T) {
	assert.InDelta(t, DefaultNearbyThreshold, NewAnonymityPolicy(-1).Threshold, 0)

	wide := NewAnonymityPolicy(0.5)
	assert.True(t, wide.IsNearby(at(0, 0), at(0.4, -0.4)))
}

func TestTruncate(t *testing.T) {
	assert.InDelta(t, 12.971, Truncate(12.97194, 3), 1e-9)
	assert.InDelta(t, -77.594, Truncate(-77.59451, 3), 1e-9, "negative values round toward zero")
	assert.InDelta(t, 12.0, Truncate(12.999, 0), 1e-9)
}

func TestApproxDistanceMeters(t *testing.T) {
	// One hundredth of a degree of latitude is roughly 1.1 km.
	distance := ApproxDistanceMeters(at(0, 0), at(0.01, 0))
	assert.InDelta(t, 1112, distance, 5)
}

func TestConversation(t *testing.T) {
	c := &Conversation{UserAID: uuid.New(), UserBID: uuid.New(), IsAnonymousForA: true, IsAnonymousForB: false}

	assert.False(t, c.AnonymityMatches(true), "flags are compared together")
	assert.False(t, c.AnonymityMatches(false))
	assert.True(t, c.Involves(c.UserBID))
	assert.False(t, c.Involves(uuid.New()))
}
