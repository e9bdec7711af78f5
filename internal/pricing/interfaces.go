package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/jezhtech/fc-fleet-sub002/internal/zones"
)

// RepositoryInterface defines the store surface consumed by the fare service.
// Rules are authored externally; this service only reads.
type RepositoryInterface interface {
	// ListActiveRules returns active rules in resolution order:
	// most-recently-curated first. The cascade depends on this order being
	// stable.
	ListActiveRules(ctx context.Context) ([]*FareRule, error)
	GetRuleByID(ctx context.Context, id uuid.UUID) (*FareRule, error)
}

// ZoneProvider supplies the active zone list for fare computation.
type ZoneProvider interface {
	ActiveZones(ctx context.Context) ([]*zones.Zone, error)
}
