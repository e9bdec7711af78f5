package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

// FareRule is a pricing template. Rules are authored by the admin console;
// this service only reads them.
type FareRule struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`

	// Monetary rates in the deployment's base currency unit.
	BasePrice      float64 `json:"base_price" db:"base_price"`
	PerKmPrice     float64 `json:"per_km_price" db:"per_km_price"`
	PerMinutePrice float64 `json:"per_minute_price" db:"per_minute_price"`
	MinFare        float64 `json:"min_fare" db:"min_fare"`

	// SurgeMultiplier applies only when the trip is classified as peak-hour.
	// Normalized to 1 at the store boundary when below 1.
	SurgeMultiplier float64 `json:"surge_multiplier" db:"surge_multiplier"`

	// IsDefault marks a fallback rule. Uniqueness is a convention, not a
	// constraint; resolution handles zero, one, or many defaults.
	IsDefault bool `json:"is_default" db:"is_default"`

	// ApplicableZoneIDs scopes the rule to zones; empty means not zone-scoped.
	ApplicableZoneIDs []uuid.UUID `json:"applicable_zone_ids,omitempty" db:"applicable_zone_ids"`

	// TaxiTypeIDs are the vehicle classes this rule applies to. A rule
	// irrelevant to the requested vehicle class is never selected.
	TaxiTypeIDs []uuid.UUID `json:"taxi_type_ids" db:"taxi_type_ids"`

	// SpecialConditions carries time-of-day override multipliers. Present in
	// the data model; the calculator evaluates only the single peak flag.
	SpecialConditions *SpecialConditions `json:"special_conditions,omitempty" db:"special_conditions"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SpecialConditions defines optional override multipliers for richer
// time-of-day rule tables layered on by callers.
type SpecialConditions struct {
	TimeOfDay         []TimeWindowMultiplier `json:"time_of_day,omitempty"`
	DaysOfWeek        []int                  `json:"days_of_week,omitempty"` // 0=Sunday, 6=Saturday
	HolidayMultiplier *float64               `json:"holiday_multiplier,omitempty"`
}

// TimeWindowMultiplier is an hour-range multiplier within a day.
type TimeWindowMultiplier struct {
	StartHour  int     `json:"start_hour"`
	EndHour    int     `json:"end_hour"`
	Multiplier float64 `json:"multiplier"`
}

// AppliesToTaxiType reports whether the rule covers the given vehicle class.
func (r *FareRule) AppliesToTaxiType(taxiTypeID uuid.UUID) bool {
	for _, id := range r.TaxiTypeIDs {
		if id == taxiTypeID {
			return true
		}
	}
	return false
}

// CoversZone reports whether the rule is scoped to the given zone id.
func (r *FareRule) CoversZone(zoneID uuid.UUID) bool {
	for _, id := range r.ApplicableZoneIDs {
		if id == zoneID {
			return true
		}
	}
	return false
}

// TripContext is the input bundle to a single fare computation. It is
// ephemeral and never persisted.
type TripContext struct {
	Pickup  geo.Point
	Dropoff geo.Point

	// Supplied by the routing provider. Must be non-negative.
	DistanceKm      float64
	DurationMinutes float64

	TaxiTypeID uuid.UUID

	// RequestedAt is the evaluation instant for peak-hour classification.
	RequestedAt time.Time

	// IsPeakHour, when set, overrides classification of RequestedAt.
	IsPeakHour *bool
}

// UnknownZoneName is reported in breakdowns when a trip end matched no zone.
const UnknownZoneName = "Unknown"

// FareBreakdown is the itemized output of a fare computation.
type FareBreakdown struct {
	// Additive components before multipliers.
	BaseFare     float64 `json:"base_fare"`
	DistanceFare float64 `json:"distance_fare"`
	TimeFare     float64 `json:"time_fare"`

	// Multipliers actually applied (1 when not applicable).
	SurgeMultiplier float64 `json:"surge_multiplier"`
	ZoneSurcharge   float64 `json:"zone_surcharge"`

	// MinimumFareApplied is true when the floor overrode the computed total.
	MinimumFareApplied bool `json:"minimum_fare_applied"`

	AppliedRuleID   uuid.UUID  `json:"applied_rule_id"`
	PickupZoneID    *uuid.UUID `json:"pickup_zone_id,omitempty"`
	PickupZoneName  string     `json:"pickup_zone_name"`
	DropoffZoneID   *uuid.UUID `json:"dropoff_zone_id,omitempty"`
	DropoffZoneName string     `json:"dropoff_zone_name"`

	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	IsPeakHour      bool    `json:"is_peak_hour"`

	// TotalFare is rounded to two decimal places and never below the applied
	// rule's minimum fare.
	TotalFare float64 `json:"total_fare"`
}

// EstimateRequest asks for a fare estimate from coordinates; distance and
// duration come from the routing provider.
type EstimateRequest struct {
	PickupLatitude   float64    `json:"pickup_latitude" binding:"latitude"`
	PickupLongitude  float64    `json:"pickup_longitude" binding:"longitude"`
	DropoffLatitude  float64    `json:"dropoff_latitude" binding:"latitude"`
	DropoffLongitude float64    `json:"dropoff_longitude" binding:"longitude"`
	TaxiTypeID       uuid.UUID  `json:"taxi_type_id" binding:"required"`
	RequestedAt      *time.Time `json:"requested_at,omitempty"`
}

// QuoteRequest asks for a fare with caller-supplied distance and duration,
// bypassing the routing provider.
type QuoteRequest struct {
	PickupLatitude   float64    `json:"pickup_latitude" binding:"latitude"`
	PickupLongitude  float64    `json:"pickup_longitude" binding:"longitude"`
	DropoffLatitude  float64    `json:"dropoff_latitude" binding:"latitude"`
	DropoffLongitude float64    `json:"dropoff_longitude" binding:"longitude"`
	DistanceKm       float64    `json:"distance_km" binding:"min=0"`
	DurationMinutes  float64    `json:"duration_minutes" binding:"min=0"`
	TaxiTypeID       uuid.UUID  `json:"taxi_type_id" binding:"required"`
	RequestedAt      *time.Time `json:"requested_at,omitempty"`
	IsPeakHour       *bool      `json:"is_peak_hour,omitempty"`
}

// EstimateResponse is the API shape for an estimate or quote.
type EstimateResponse struct {
	TotalFare       float64        `json:"total_fare"`
	Currency        string         `json:"currency"`
	FormattedFare   string         `json:"formatted_fare"`
	DistanceKm      float64        `json:"distance_km"`
	DurationMinutes float64        `json:"duration_minutes"`
	RoutingSource   string         `json:"routing_source,omitempty"`
	Breakdown       *FareBreakdown `json:"breakdown"`
}

// RuleResponse is the read-only API shape for a fare rule.
type RuleResponse struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	BasePrice         float64     `json:"base_price"`
	PerKmPrice        float64     `json:"per_km_price"`
	PerMinutePrice    float64     `json:"per_minute_price"`
	MinFare           float64     `json:"min_fare"`
	SurgeMultiplier   float64     `json:"surge_multiplier"`
	IsDefault         bool        `json:"is_default"`
	ApplicableZoneIDs []uuid.UUID `json:"applicable_zone_ids,omitempty"`
	TaxiTypeIDs       []uuid.UUID `json:"taxi_type_ids"`
	IsActive          bool        `json:"is_active"`
}

// PeakResponse is the API shape for a peak-hour probe.
type PeakResponse struct {
	At         time.Time `json:"at"`
	IsPeakHour bool      `json:"is_peak_hour"`
}

// ToRuleResponse converts a FareRule to its API response.
func ToRuleResponse(r *FareRule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		BasePrice:         r.BasePrice,
		PerKmPrice:        r.PerKmPrice,
		PerMinutePrice:    r.PerMinutePrice,
		MinFare:           r.MinFare,
		SurgeMultiplier:   r.SurgeMultiplier,
		IsDefault:         r.IsDefault,
		ApplicableZoneIDs: r.ApplicableZoneIDs,
		TaxiTypeIDs:       r.TaxiTypeIDs,
		IsActive:          r.IsActive,
	}
}
