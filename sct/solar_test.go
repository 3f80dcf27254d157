package sct

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSolar(t *testing.T) {
	// Greenwich in July: the sun is well above the day elevation at noon
	// UTC and well below the night elevation at midnight.
	lat, lng := 51.48, 0.0
	noon := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Temperature(6500), Solar(noon, lat, lng, -6, 3, 4500, 6500))
	assert.Equal(t, Temperature(4500), Solar(midnight, lat, lng, -6, 3, 4500, 6500))
}

func TestSolarInterpolates(t *testing.T) {
	// Somewhere between sunset and civil dusk the result is strictly
	// between the two presets.
	lat, lng := 51.48, 0.0
	dusk := time.Date(2025, 7, 1, 20, 45, 0, 0, time.UTC)
	got := Solar(dusk, lat, lng, -6, 3, 4500, 6500)
	assert.Greater(t, got, Temperature(4500))
	assert.Less(t, got, Temperature(6500))
}
