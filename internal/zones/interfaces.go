package zones

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the store surface consumed by the zone service.
// Zones are authored externally; this service only reads.
type RepositoryInterface interface {
	ListActiveZones(ctx context.Context) ([]*Zone, error)
	ListZones(ctx context.Context) ([]*Zone, error)
	GetZoneByID(ctx context.Context, id uuid.UUID) (*Zone, error)
}
