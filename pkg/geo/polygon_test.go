package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns a closed unit-ish square ring from (lng0,lat0) to (lng1,lat1).
func square(lng0, lat0, lng1, lat1 float64) Ring {
	return Ring{
		{Lng: lng0, Lat: lat0},
		{Lng: lng1, Lat: lat0},
		{Lng: lng1, Lat: lat1},
		{Lng: lng0, Lat: lat1},
		{Lng: lng0, Lat: lat0},
	}
}

func TestRingValidate(t *testing.T) {
	tests := []struct {
		name    string
		ring    Ring
		wantErr error
	}{
		{
			name: "valid square",
			ring: square(0, 0, 1, 1),
		},
		{
			name:    "too few points",
			ring:    Ring{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 0, Lat: 0}},
			wantErr: ErrRingTooSmall,
		},
		{
			name: "not closed",
			ring: Ring{
				{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 0, Lat: 1},
			},
			wantErr: ErrRingNotClosed,
		},
		{
			name: "degenerate repeated points",
			ring: Ring{
				{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 0, Lat: 0},
			},
			wantErr: ErrRingTooSmall,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ring.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolygonValidate(t *testing.T) {
	valid := Polygon{Outer: square(0, 0, 10, 10)}
	require.NoError(t, valid.Validate())

	badHole := Polygon{
		Outer: square(0, 0, 10, 10),
		Holes: []Ring{{{Lng: 1, Lat: 1}, {Lng: 2, Lat: 2}}},
	}
	assert.Error(t, badHole.Validate())
}

func TestPolygonContains(t *testing.T) {
	poly := Polygon{Outer: square(55.0, 25.0, 55.5, 25.5)}

	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"center", Point{Lng: 55.25, Lat: 25.25}, true},
		{"outside west", Point{Lng: 54.9, Lat: 25.25}, false},
		{"outside north", Point{Lng: 55.25, Lat: 25.6}, false},
		{"far away", Point{Lng: -122.4, Lat: 37.8}, false},
		{"near corner inside", Point{Lng: 55.001, Lat: 25.001}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, poly.Contains(tc.pt))
		})
	}
}

func TestPolygonContains_Hole(t *testing.T) {
	poly := Polygon{
		Outer: square(0, 0, 10, 10),
		Holes: []Ring{square(4, 4, 6, 6)},
	}

	assert.True(t, poly.Contains(Point{Lng: 2, Lat: 2}))
	assert.False(t, poly.Contains(Point{Lng: 5, Lat: 5}), "point inside hole")
	assert.True(t, poly.Contains(Point{Lng: 7, Lat: 7}))
}

func TestPolygonContains_Concave(t *testing.T) {
	// A "U" shape: contains the arms but not the notch between them.
	u := Polygon{Outer: Ring{
		{Lng: 0, Lat: 0},
		{Lng: 6, Lat: 0},
		{Lng: 6, Lat: 6},
		{Lng: 4, Lat: 6},
		{Lng: 4, Lat: 2},
		{Lng: 2, Lat: 2},
		{Lng: 2, Lat: 6},
		{Lng: 0, Lat: 6},
		{Lng: 0, Lat: 0},
	}}
	require.NoError(t, u.Validate())

	assert.True(t, u.Contains(Point{Lng: 1, Lat: 5}), "left arm")
	assert.True(t, u.Contains(Point{Lng: 5, Lat: 5}), "right arm")
	assert.False(t, u.Contains(Point{Lng: 3, Lat: 5}), "notch")
	assert.True(t, u.Contains(Point{Lng: 3, Lat: 1}), "bottom bar")
}

func TestPolygonContains_BoundaryDeterministic(t *testing.T) {
	poly := Polygon{Outer: square(0, 0, 1, 1)}
	pt := Point{Lng: 0, Lat: 0.5}

	first := poly.Contains(pt)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, poly.Contains(pt))
	}
}

func TestPolygonContains_InvalidPolygon(t *testing.T) {
	open := Polygon{Outer: Ring{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}}}
	assert.False(t, open.Contains(Point{Lng: 0.5, Lat: 0.1}))
}
