package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmIdenticalPoints(t *testing.T) {
	// The clamp keeps acos from seeing a float just above 1.
	assert.InDelta(t, 0.0, DistanceKm(24.7136, 46.6753, 24.7136, 46.6753), 0.05)
}

func TestDistanceKmKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{
			name: "Riyadh to Jeddah",
			lat1: 24.7136, lng1: 46.6753,
			lat2: 21.4858, lng2: 39.1925,
			wantKm: 846, tolerance: 10,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			wantKm: 111.19, tolerance: 0.5,
		},
		{
			name: "antipodal points",
			lat1: 0, lng1: 0,
			lat2: 0, lng2: 180,
			wantKm: 20015, tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	d1 := DistanceKm(24.7136, 46.6753, 26.4207, 50.0888)
	d2 := DistanceKm(26.4207, 50.0888, 24.7136, 46.6753)
	assert.InDelta(t, d1, d2, 1e-9)
}
