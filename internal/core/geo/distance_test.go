package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDistanceKm verifies known distances against reference values.
func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expected   float64
		tolerance  float64
	}{
		{
			name: "CoincidentPoints",
			lat1: -42.88, lon1: 147.33,
			lat2: -42.88, lon2: 147.33,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "HobartToBurnie",
			lat1: -42.88, lon1: 147.33,
			lat2: -41.05, lon2: 145.91,
			expected:  233,
			tolerance: 5,
		},
		{
			name: "HobartToMacquarieIsland",
			lat1: -42.88, lon1: 147.33,
			lat2: -54.50, lon2: 158.94,
			expected:  1480,
			tolerance: 30,
		},
		{
			name: "EquatorQuarterCircumference",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 90,
			expected:  10007.5,
			tolerance: 10,
		},
		{
			name: "Antipodal",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			expected:  20015,
			tolerance: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

// TestDistanceKm_Symmetry verifies the distance is direction-independent.
func TestDistanceKm_Symmetry(t *testing.T) {
	forward := DistanceKm(-42.88, 147.33, -66.28, 110.53)
	backward := DistanceKm(-66.28, 110.53, -42.88, 147.33)
	assert.InDelta(t, forward, backward, 1e-9)
}
