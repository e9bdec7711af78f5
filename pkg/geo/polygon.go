package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrRingNotClosed indicates the first and last points of a ring differ.
	ErrRingNotClosed = errors.New("ring is not closed")

	// ErrRingTooSmall indicates a ring has fewer than three distinct points.
	ErrRingTooSmall = errors.New("ring has fewer than three distinct points")
)

// Point is a geographic coordinate. Longitude first, matching the GeoJSON
// position convention used by the zone store.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Ring is an ordered, closed sequence of points. The first and last point
// must be identical.
type Ring []Point

// Polygon is a zone boundary: one outer ring plus optional hole rings.
// Coordinates are treated as planar, which is an acceptable approximation
// at city scale.
type Polygon struct {
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// Validate checks that the ring is closed and has at least three distinct
// points (four including the repeated closing point).
func (r Ring) Validate() error {
	if len(r) < 4 {
		return fmt.Errorf("%w: %d points", ErrRingTooSmall, len(r))
	}
	if r[0] != r[len(r)-1] {
		return ErrRingNotClosed
	}

	distinct := make(map[Point]struct{}, len(r))
	for _, p := range r[:len(r)-1] {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("%w: %d distinct", ErrRingTooSmall, len(distinct))
	}

	return nil
}

// Validate checks the outer ring and every hole ring.
func (p Polygon) Validate() error {
	if err := p.Outer.Validate(); err != nil {
		return fmt.Errorf("outer ring: %w", err)
	}
	for i, hole := range p.Holes {
		if err := hole.Validate(); err != nil {
			return fmt.Errorf("hole ring %d: %w", i, err)
		}
	}
	return nil
}

// Contains reports whether the point is inside the polygon: inside the outer
// ring and not inside any hole ring, using even-odd ray casting per ring.
//
// Points exactly on a ring boundary classify by the parity rule; the outcome
// is deterministic for a given polygon and point but is not guaranteed to be
// "inside". Callers that need to skip malformed polygons must call Validate
// first: Contains on an invalid polygon simply returns false.
func (p Polygon) Contains(pt Point) bool {
	if !p.Outer.contains(pt) {
		return false
	}
	for _, hole := range p.Holes {
		if hole.contains(pt) {
			return false
		}
	}
	return true
}

// contains runs the standard ray-casting test: a ray from the point toward
// +infinity on the longitude axis crosses the ring boundary an odd number of
// times iff the point is inside.
func (r Ring) contains(pt Point) bool {
	if len(r) < 4 {
		return false
	}

	inside := false
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		pi, pj := r[i], r[j]
		if (pi.Lat > pt.Lat) == (pj.Lat > pt.Lat) {
			continue
		}
		// Longitude of the edge at the point's latitude.
		crossing := (pj.Lng-pi.Lng)*(pt.Lat-pi.Lat)/(pj.Lat-pi.Lat) + pi.Lng
		if pt.Lng < crossing {
			inside = !inside
		}
	}
	return inside
}
