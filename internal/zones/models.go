package zones

import (
	"time"

	"github.com/google/uuid"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

// CrossZoneMultiplier is the fixed premium applied when pickup and dropoff
// resolve to two different zones.
const CrossZoneMultiplier = 1.10

// Zone is a named geographic polygon used for pricing differentiation.
// Zones are authored by the admin console; this service only reads them.
type Zone struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	Boundary    geo.Polygon `json:"boundary" db:"coordinates"`

	// Surcharge is a multiplicative fare adjustment for trips touching this
	// zone. Normalized to 1 at the store boundary when unset or non-positive.
	Surcharge float64 `json:"surcharge" db:"surcharge"`

	IsActive bool `json:"is_active" db:"is_active"`

	// Display-only attributes.
	Color   string  `json:"color,omitempty" db:"color"`
	AreaKm2 float64 `json:"area_km2,omitempty" db:"area_km2"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ZoneResponse is the read-only API shape for a zone.
type ZoneResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Surcharge   float64   `json:"surcharge"`
	IsActive    bool      `json:"is_active"`
	Color       string    `json:"color,omitempty"`
	AreaKm2     float64   `json:"area_km2,omitempty"`
}

// ResolveResponse is the API shape for a zone-resolution lookup.
type ResolveResponse struct {
	Matched bool          `json:"matched"`
	Zone    *ZoneResponse `json:"zone,omitempty"`
}

// ToZoneResponse converts a Zone to its API response.
func ToZoneResponse(z *Zone) *ZoneResponse {
	if z == nil {
		return nil
	}
	return &ZoneResponse{
		ID:          z.ID,
		Name:        z.Name,
		Description: z.Description,
		Surcharge:   z.Surcharge,
		IsActive:    z.IsActive,
		Color:       z.Color,
		AreaKm2:     z.AreaKm2,
	}
}
