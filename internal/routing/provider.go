package routing

import (
	"context"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

// Provider maps a coordinate pair to trip distance and duration. The fare
// engine never performs I/O itself; it consumes a Route supplied by a
// Provider.
type Provider interface {
	GetRoute(ctx context.Context, origin, destination geo.Point) (*Route, error)
	Name() string
}

// Route is a provider's answer for a coordinate pair.
type Route struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Source          string  `json:"source,omitempty"`
}

// Config holds routing provider configuration.
type Config struct {
	Provider       string // "google" or "estimate"
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}
