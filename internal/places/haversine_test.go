package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(0, 0, 0, 0))
	assert.Equal(t, 0.0, Haversine(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestHaversineOneDegreeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is about 69.09 miles.
	d := Haversine(0, 0, 0, 1)
	assert.InDelta(t, 69.09, d, 0.1)
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	b := Haversine(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 1e-9)

	// NYC to LA is roughly 2445 miles great-circle.
	assert.InDelta(t, 2445, a, 15)
}
