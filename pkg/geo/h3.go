package geo

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// H3 resolution levels used for estimate caching.
// See: https://h3geo.org/docs/core-library/restable
const (
	// H3ResolutionEstimate buckets pickup/dropoff points for fare-estimate
	// cache keys (~460m edge, ~0.74 km²). Two requests inside the same pair
	// of cells share an estimate.
	H3ResolutionEstimate = 8
)

// LatLngToCell converts a point to an H3 cell index at the given resolution.
// Returns 0 for out-of-range coordinates, which should be validated upstream.
func LatLngToCell(p Point, resolution int) h3.Cell {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), resolution)
	if err != nil {
		return 0
	}
	return cell
}

// EstimateCellKey returns a stable cache-key fragment for an origin/destination
// pair at the estimate resolution.
func EstimateCellKey(origin, destination Point) string {
	return fmt.Sprintf("%s:%s",
		LatLngToCell(origin, H3ResolutionEstimate).String(),
		LatLngToCell(destination, H3ResolutionEstimate).String(),
	)
}
