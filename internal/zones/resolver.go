package zones

import "github.com/jezhtech/fc-fleet-sub002/pkg/geo"

// Resolve returns the first active zone, in input order, whose boundary
// contains the point, or nil when no active zone matches. A nil result is a
// normal outcome: the point lies outside all modeled zones.
//
// Zones with invalid geometry are skipped rather than aborting resolution;
// callers that care about data quality should check InvalidZones separately.
// When zone polygons overlap, the first match in input order wins. Zones are
// expected by convention not to overlap; no further conflict resolution is
// attempted.
func Resolve(pt geo.Point, list []*Zone) *Zone {
	for _, z := range list {
		if z == nil || !z.IsActive {
			continue
		}
		if z.Boundary.Validate() != nil {
			continue
		}
		if z.Boundary.Contains(pt) {
			return z
		}
	}
	return nil
}

// InvalidZones returns the active zones whose boundary fails validation.
// These never match during resolution and should be flagged as a
// data-quality issue.
func InvalidZones(list []*Zone) []*Zone {
	var invalid []*Zone
	for _, z := range list {
		if z == nil || !z.IsActive {
			continue
		}
		if z.Boundary.Validate() != nil {
			invalid = append(invalid, z)
		}
	}
	return invalid
}

// ComposeSurcharge combines the per-zone surcharge multipliers of the pickup
// and dropoff zones with the cross-zone premium. Either zone may be nil; a
// missing zone contributes a factor of 1. The cross-zone premium applies only
// when both zones are present and distinct.
func ComposeSurcharge(pickup, dropoff *Zone) float64 {
	surcharge := 1.0
	if pickup != nil && pickup.Surcharge > 0 {
		surcharge *= pickup.Surcharge
	}
	if dropoff != nil && dropoff.Surcharge > 0 {
		surcharge *= dropoff.Surcharge
	}
	if pickup != nil && dropoff != nil && pickup.ID != dropoff.ID {
		surcharge *= CrossZoneMultiplier
	}
	return surcharge
}
