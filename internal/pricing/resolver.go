package pricing

import "github.com/google/uuid"

// ResolveFareRule selects the single most specific applicable fare rule for a
// vehicle class and optional pickup/dropoff zone ids. The cascade returns at
// the first successful tier:
//
//  1. dual-zone: rule covers the vehicle class and both zone ids;
//  2. single-zone: rule covers the vehicle class and one present zone id,
//     pickup taking precedence when both are present;
//  3. default for the vehicle class;
//  4. global default, regardless of vehicle class.
//
// Within a tier the first qualifying rule in input order wins, so callers
// must supply rules in a stable order. A nil result means the cascade failed
// entirely; callers must treat that as ErrNoApplicableRule and never invoke
// the calculator without a rule.
func ResolveFareRule(taxiTypeID uuid.UUID, pickupZoneID, dropoffZoneID *uuid.UUID, rules []*FareRule) *FareRule {
	// Tier 1: both zones known and scoped by the same rule.
	if pickupZoneID != nil && dropoffZoneID != nil {
		for _, r := range rules {
			if r == nil || !r.AppliesToTaxiType(taxiTypeID) {
				continue
			}
			if r.CoversZone(*pickupZoneID) && r.CoversZone(*dropoffZoneID) {
				return r
			}
		}
	}

	// Tier 2: a single zone id, pickup preferred.
	if zoneID := firstZoneID(pickupZoneID, dropoffZoneID); zoneID != nil {
		for _, r := range rules {
			if r == nil || !r.AppliesToTaxiType(taxiTypeID) {
				continue
			}
			if r.CoversZone(*zoneID) {
				return r
			}
		}
		// If pickup was tried and dropoff is also present, try dropoff too:
		// tier 1 already failed, so a dropoff-scoped rule is still more
		// specific than a bare default.
		if pickupZoneID != nil && dropoffZoneID != nil {
			for _, r := range rules {
				if r == nil || !r.AppliesToTaxiType(taxiTypeID) {
					continue
				}
				if r.CoversZone(*dropoffZoneID) {
					return r
				}
			}
		}
	}

	// Tier 3: default rule for the vehicle class.
	for _, r := range rules {
		if r != nil && r.IsDefault && r.AppliesToTaxiType(taxiTypeID) {
			return r
		}
	}

	// Tier 4: any default rule, last resort.
	for _, r := range rules {
		if r != nil && r.IsDefault {
			return r
		}
	}

	return nil
}

func firstZoneID(pickup, dropoff *uuid.UUID) *uuid.UUID {
	if pickup != nil {
		return pickup
	}
	return dropoff
}
