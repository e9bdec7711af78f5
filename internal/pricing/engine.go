package pricing

import (
	"github.com/google/uuid"

	"github.com/jezhtech/fc-fleet-sub002/internal/zones"
)

// Engine performs a complete fare computation over caller-supplied rules and
// zones. It is pure: no I/O, no shared state, deterministic for a given
// input. Concurrent use is safe because every invocation receives its inputs
// fresh from the caller.
type Engine struct{}

// NewEngine creates a fare engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Quote resolves the pickup/dropoff zones, selects the applicable fare rule,
// classifies the peak window, and computes the itemized fare.
//
// Returns ErrNoApplicableRule when the rule cascade fails entirely and
// ErrInvalidInput for precondition violations. An unmatched zone is a normal
// outcome and reported as "Unknown" in the breakdown.
func (e *Engine) Quote(trip TripContext, rules []*FareRule, zoneList []*zones.Zone) (*FareBreakdown, error) {
	pickupZone := zones.Resolve(trip.Pickup, zoneList)
	dropoffZone := zones.Resolve(trip.Dropoff, zoneList)

	rule := ResolveFareRule(trip.TaxiTypeID, zoneID(pickupZone), zoneID(dropoffZone), rules)
	if rule == nil {
		return nil, ErrNoApplicableRule
	}

	isPeak := IsPeakHour(trip.RequestedAt)
	if trip.IsPeakHour != nil {
		isPeak = *trip.IsPeakHour
	}

	surcharge := zones.ComposeSurcharge(pickupZone, dropoffZone)

	breakdown, err := CalculateFare(rule, trip.DistanceKm, trip.DurationMinutes, isPeak, surcharge)
	if err != nil {
		return nil, err
	}

	if pickupZone != nil {
		id := pickupZone.ID
		breakdown.PickupZoneID = &id
		breakdown.PickupZoneName = pickupZone.Name
	}
	if dropoffZone != nil {
		id := dropoffZone.ID
		breakdown.DropoffZoneID = &id
		breakdown.DropoffZoneName = dropoffZone.Name
	}

	return breakdown, nil
}

func zoneID(z *zones.Zone) *uuid.UUID {
	if z == nil {
		return nil
	}
	id := z.ID
	return &id
}
