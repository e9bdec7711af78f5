package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	marina := Point{Lng: 55.1403, Lat: 25.0806}
	downtown := Point{Lng: 55.2744, Lat: 25.1972}

	got := Haversine(marina, downtown)
	assert.InDelta(t, 18.5, got, 2.0)

	assert.Equal(t, 0.0, Haversine(marina, marina))
	assert.Equal(t, Haversine(marina, downtown), Haversine(downtown, marina))
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		want       float64
	}{
		{"zero distance clamps to a minute", 0, 1},
		{"short hop clamps to a minute", 0.2, 1},
		{"twenty km at city speed", 20, 30},
		{"forty km at city speed", 40, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateDuration(tc.distanceKm))
		})
	}
}
