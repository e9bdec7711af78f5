package zones

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/cache"
	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
)

// Service handles zone business logic: list-fetch with caching and
// point-to-zone resolution.
type Service struct {
	repo  RepositoryInterface
	cache *cache.Manager
}

// NewService creates a new zone service. The cache manager is optional.
func NewService(repo RepositoryInterface, cacheManager *cache.Manager) *Service {
	return &Service{repo: repo, cache: cacheManager}
}

// ActiveZones returns all active zones in resolution order, from cache when
// fresh. Invalid boundaries are flagged once per fetch as a data-quality
// warning but remain in the list so counts stay honest.
func (s *Service) ActiveZones(ctx context.Context) ([]*Zone, error) {
	if s.cache != nil {
		var cached []*Zone
		if err := s.cache.Get(ctx, cache.Keys.ActiveZones(), &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.ListActiveZones(ctx)
	if err != nil {
		return nil, err
	}

	for _, z := range InvalidZones(list) {
		logger.WithContext(ctx).Warn("active zone excluded from matching due to invalid geometry",
			zap.String("zone_id", z.ID.String()),
			zap.String("zone_name", z.Name),
		)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.Keys.ActiveZones(), list, cache.TTL.Zones()); err != nil {
			logger.WithContext(ctx).Debug("failed to cache active zones", zap.Error(err))
		}
	}

	return list, nil
}

// ResolveZone classifies a point into its enclosing active zone, or nil when
// the point is outside all modeled zones.
func (s *Service) ResolveZone(ctx context.Context, pt geo.Point) (*Zone, error) {
	list, err := s.ActiveZones(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(pt, list), nil
}

// ListZones returns every zone for the read-only admin surface.
func (s *Service) ListZones(ctx context.Context) ([]*Zone, error) {
	return s.repo.ListZones(ctx)
}

// GetZone returns a single zone by id.
func (s *Service) GetZone(ctx context.Context, id uuid.UUID) (*Zone, error) {
	return s.repo.GetZoneByID(ctx, id)
}
