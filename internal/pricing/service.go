package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/internal/routing"
	"github.com/jezhtech/fc-fleet-sub002/pkg/cache"
	apperrors "github.com/jezhtech/fc-fleet-sub002/pkg/errors"
	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
	"github.com/jezhtech/fc-fleet-sub002/pkg/validation"
)

// Service orchestrates fare computation: routing, rule and zone fetch, and
// the pure pricing engine.
type Service struct {
	repo     RepositoryInterface
	zoneSvc  ZoneProvider
	router   routing.Provider
	cache    *cache.Manager
	engine   *Engine
	currency string

	// loc is the wall-clock timezone for peak classification.
	loc *time.Location

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates a new fare service. The cache manager is optional.
func NewService(repo RepositoryInterface, zoneSvc ZoneProvider, router routing.Provider, cacheManager *cache.Manager, currency string, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		zoneSvc:  zoneSvc,
		router:   router,
		cache:    cacheManager,
		engine:   NewEngine(),
		currency: currency,
		loc:      loc,
		now:      time.Now,
	}
}

// Estimate prices a trip from coordinates, resolving distance and duration
// through the routing provider.
func (s *Service) Estimate(ctx context.Context, req *EstimateRequest) (*EstimateResponse, error) {
	pickup := geo.Point{Lat: req.PickupLatitude, Lng: req.PickupLongitude}
	dropoff := geo.Point{Lat: req.DropoffLatitude, Lng: req.DropoffLongitude}

	route, err := s.resolveRoute(ctx, pickup, dropoff)
	if err != nil {
		apperrors.CaptureErrorWithContext(ctx, err, map[string]interface{}{
			"provider": s.router.Name(),
		})
		return nil, fmt.Errorf("failed to resolve route: %w", err)
	}

	trip := TripContext{
		Pickup:          pickup,
		Dropoff:         dropoff,
		DistanceKm:      route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		TaxiTypeID:      req.TaxiTypeID,
		RequestedAt:     s.requestedAt(req.RequestedAt),
	}

	breakdown, err := s.quote(ctx, trip)
	if err != nil {
		return nil, err
	}

	recordEstimate(route.Source)
	return s.toResponse(breakdown, route.Source), nil
}

// Quote prices a trip with caller-supplied distance and duration, bypassing
// the routing provider.
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*EstimateResponse, error) {
	if err := validation.ValidateDistance(req.DistanceKm); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if err := validation.ValidateDuration(req.DurationMinutes); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	trip := TripContext{
		Pickup:          geo.Point{Lat: req.PickupLatitude, Lng: req.PickupLongitude},
		Dropoff:         geo.Point{Lat: req.DropoffLatitude, Lng: req.DropoffLongitude},
		DistanceKm:      req.DistanceKm,
		DurationMinutes: req.DurationMinutes,
		TaxiTypeID:      req.TaxiTypeID,
		RequestedAt:     s.requestedAt(req.RequestedAt),
		IsPeakHour:      req.IsPeakHour,
	}

	breakdown, err := s.quote(ctx, trip)
	if err != nil {
		return nil, err
	}

	return s.toResponse(breakdown, ""), nil
}

func (s *Service) quote(ctx context.Context, trip TripContext) (*FareBreakdown, error) {
	rules, err := s.activeRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fare rules: %w", err)
	}

	zoneList, err := s.zoneSvc.ActiveZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}

	breakdown, err := s.engine.Quote(trip, rules, zoneList)
	if err != nil {
		if errors.Is(err, ErrNoApplicableRule) {
			recordNoRule()
			logger.ErrorContext(ctx, "no applicable fare rule",
				zap.String("taxi_type_id", trip.TaxiTypeID.String()),
				zap.String("pickup_zone", breakdownZoneName(breakdown, true)),
			)
		}
		recordQuote("error")
		return nil, err
	}

	if breakdown.IsPeakHour {
		recordPeakQuote()
	}
	recordQuote("ok")

	return breakdown, nil
}

// ListRules returns all active fare rules for the read-only admin surface.
func (s *Service) ListRules(ctx context.Context) ([]*FareRule, error) {
	return s.activeRules(ctx)
}

// GetRule returns a single fare rule by id.
func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*FareRule, error) {
	return s.repo.GetRuleByID(ctx, id)
}

// Peak classifies an instant against the peak-hour windows.
func (s *Service) Peak(at *time.Time) *PeakResponse {
	t := s.requestedAt(at)
	return &PeakResponse{At: t, IsPeakHour: IsPeakHour(t)}
}

// resolveRoute fetches distance and duration, short-circuiting through the
// cache for coordinate pairs that fall into the same cell pair.
func (s *Service) resolveRoute(ctx context.Context, pickup, dropoff geo.Point) (*routing.Route, error) {
	if s.cache == nil {
		return s.router.GetRoute(ctx, pickup, dropoff)
	}

	key := cache.Keys.Route(geo.EstimateCellKey(pickup, dropoff))

	var cached routing.Route
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		recordCacheLookup(true)
		return &cached, nil
	}
	recordCacheLookup(false)

	route, err := s.router.GetRoute(ctx, pickup, dropoff)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, route, cache.TTL.Route()); err != nil {
		logger.DebugContext(ctx, "failed to cache route", zap.Error(err))
	}

	return route, nil
}

func (s *Service) activeRules(ctx context.Context) ([]*FareRule, error) {
	if s.cache == nil {
		return s.repo.ListActiveRules(ctx)
	}

	var rules []*FareRule
	err := s.cache.GetOrSet(ctx, cache.Keys.ActiveRules(), cache.TTL.Rules(), &rules, func() (interface{}, error) {
		return s.repo.ListActiveRules(ctx)
	})
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (s *Service) requestedAt(at *time.Time) time.Time {
	if at != nil {
		return at.In(s.loc)
	}
	return s.now().In(s.loc)
}

func (s *Service) toResponse(b *FareBreakdown, source string) *EstimateResponse {
	return &EstimateResponse{
		TotalFare:       b.TotalFare,
		Currency:        s.currency,
		FormattedFare:   fmt.Sprintf("%.2f %s", b.TotalFare, s.currency),
		DistanceKm:      b.DistanceKm,
		DurationMinutes: b.DurationMinutes,
		RoutingSource:   source,
		Breakdown:       b,
	}
}

func breakdownZoneName(b *FareBreakdown, pickup bool) string {
	if b == nil {
		return UnknownZoneName
	}
	if pickup {
		return b.PickupZoneName
	}
	return b.DropoffZoneName
}
