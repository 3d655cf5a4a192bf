package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmSamePoint(t *testing.T) {
	assert.Zero(t, DistanceKm(51.5074, -0.1278, 51.5074, -0.1278))
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(51.5074, -0.1278, 53.4808, -2.2426)
	b := DistanceKm(53.4808, -2.2426, 51.5074, -0.1278)
	assert.Equal(t, a, b)
}

func TestDistanceKmLondonManchester(t *testing.T) {
	d := DistanceKm(51.5074, -0.1278, 53.4808, -2.2426)
	assert.InDelta(t, 262, d, 3)
}

func TestDistanceKmNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, DistanceKm(-33.9249, 18.4241, 51.5074, -0.1278), 0.0)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(51.5074, -0.1278))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(-91, 200))
}
