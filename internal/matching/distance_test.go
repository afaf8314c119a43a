// internal/matching/distance_test.go

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	d := Distance(13.7563, 100.5018, 13.7563, 100.5018)
	assert.InDelta(t, 0, d, 0.0001)
}

func TestDistanceIsSymmetric(t *testing.T) {
	// Bangkok and Chiang Mai
	d1 := Distance(13.7563, 100.5018, 18.7883, 98.9853)
	d2 := Distance(18.7883, 98.9853, 13.7563, 100.5018)

	assert.InDelta(t, d1, d2, 0.0001)
}

func TestDistanceKnownRoute(t *testing.T) {
	// Bangkok to Chiang Mai is roughly 580-590 km great-circle
	d := Distance(13.7563, 100.5018, 18.7883, 98.9853)
	assert.InDelta(t, 586, d, 10)
}
