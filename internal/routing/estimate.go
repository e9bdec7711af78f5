package routing

import (
	"context"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

// ProviderNameEstimate identifies the offline haversine estimator.
const ProviderNameEstimate = "estimate"

// EstimateProvider computes routes offline from straight-line distance.
// It never fails and is used as the fallback when the external provider
// is unavailable.
type EstimateProvider struct{}

// NewEstimateProvider creates the offline estimator.
func NewEstimateProvider() *EstimateProvider {
	return &EstimateProvider{}
}

// Name returns the provider name.
func (e *EstimateProvider) Name() string {
	return ProviderNameEstimate
}

// GetRoute estimates distance with the haversine formula and duration
// assuming a city average speed.
func (e *EstimateProvider) GetRoute(_ context.Context, origin, destination geo.Point) (*Route, error) {
	distanceKm := geo.Haversine(origin, destination)

	return &Route{
		DistanceKm:      distanceKm,
		DurationMinutes: geo.EstimateDuration(distanceKm),
		Source:          ProviderNameEstimate,
	}, nil
}
