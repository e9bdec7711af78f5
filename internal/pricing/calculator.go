package pricing

import (
	"fmt"
	"math"
)

// CalculateFare computes the itemized fare for a resolved rule. The
// evaluation order is fixed and load-bearing for the monetary outcome:
// base + distance + time, then the surge multiplier, then the zone
// surcharge, then the minimum-fare floor, then rounding.
//
// Zone identity fields of the returned breakdown are left for the caller to
// fill; the calculator knows only the multiplier that zone resolution
// produced. zoneSurcharge defaults to 1 and must be positive.
func CalculateFare(rule *FareRule, distanceKm, durationMinutes float64, isPeakHour bool, zoneSurcharge float64) (*FareBreakdown, error) {
	if rule == nil {
		return nil, fmt.Errorf("%w: nil fare rule", ErrInvalidInput)
	}
	if distanceKm < 0 {
		return nil, fmt.Errorf("%w: negative distance %.4f km", ErrInvalidInput, distanceKm)
	}
	if durationMinutes < 0 {
		return nil, fmt.Errorf("%w: negative duration %.4f min", ErrInvalidInput, durationMinutes)
	}
	if zoneSurcharge <= 0 {
		return nil, fmt.Errorf("%w: non-positive zone surcharge %.4f", ErrInvalidInput, zoneSurcharge)
	}
	if rule.BasePrice < 0 || rule.PerKmPrice < 0 || rule.PerMinutePrice < 0 || rule.MinFare < 0 {
		return nil, fmt.Errorf("%w: rule %s has negative rates", ErrInvalidInput, rule.ID)
	}

	breakdown := &FareBreakdown{
		BaseFare:        rule.BasePrice,
		DistanceFare:    distanceKm * rule.PerKmPrice,
		TimeFare:        durationMinutes * rule.PerMinutePrice,
		AppliedRuleID:   rule.ID,
		PickupZoneName:  UnknownZoneName,
		DropoffZoneName: UnknownZoneName,
		DistanceKm:      distanceKm,
		DurationMinutes: durationMinutes,
		IsPeakHour:      isPeakHour,
	}

	subtotal := breakdown.BaseFare + breakdown.DistanceFare + breakdown.TimeFare

	breakdown.SurgeMultiplier = 1.0
	if isPeakHour && rule.SurgeMultiplier >= 1 {
		breakdown.SurgeMultiplier = rule.SurgeMultiplier
	}

	total := subtotal * breakdown.SurgeMultiplier

	breakdown.ZoneSurcharge = zoneSurcharge
	total *= zoneSurcharge

	if total < rule.MinFare {
		total = rule.MinFare
		breakdown.MinimumFareApplied = true
	}

	breakdown.TotalFare = roundMoney(total)
	return breakdown, nil
}

// roundMoney rounds to two decimal places, half away from zero for positive
// values, matching the convention of the admin console's preview calculator.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
