package routing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
	"github.com/jezhtech/fc-fleet-sub002/pkg/resilience"
)

// ResilientProvider wraps a primary routing provider with a circuit breaker
// and falls back to the offline estimator when the primary fails or the
// breaker is open.
type ResilientProvider struct {
	primary  Provider
	fallback Provider
	breaker  *resilience.CircuitBreaker
}

// NewResilientProvider wires the primary provider behind a circuit breaker
// with the estimator as fallback.
func NewResilientProvider(primary Provider, fallback Provider) *ResilientProvider {
	breaker := resilience.NewCircuitBreaker(resilience.Settings{
		Name:             "routing-" + primary.Name(),
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}, nil)

	return &ResilientProvider{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
	}
}

// Name returns the primary provider name.
func (r *ResilientProvider) Name() string {
	return r.primary.Name()
}

// GetRoute resolves the route through the primary provider, degrading to
// the fallback estimator on any failure.
func (r *ResilientProvider) GetRoute(ctx context.Context, origin, destination geo.Point) (*Route, error) {
	result, err := r.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return r.primary.GetRoute(ctx, origin, destination)
	})
	if err == nil {
		return result.(*Route), nil
	}

	logger.WarnContext(ctx, "primary routing provider failed, using estimate",
		zap.String("provider", r.primary.Name()),
		zap.Error(err),
	)

	return r.fallback.GetRoute(ctx, origin, destination)
}
