package zones

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/database"
	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
)

// Repository handles database operations for zones.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new zone repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const zoneColumns = `id, name, description, coordinates, surcharge, is_active, color, area_km2, created_at, updated_at`

// ListActiveZones retrieves all active zones ordered by creation time, which
// fixes the resolution order for overlapping boundaries.
func (r *Repository) ListActiveZones(ctx context.Context) ([]*Zone, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM zones
		WHERE is_active = true
		ORDER BY created_at, id
	`, zoneColumns)

	return r.queryZones(ctx, query)
}

// ListZones retrieves all zones, active or not.
func (r *Repository) ListZones(ctx context.Context) ([]*Zone, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM zones
		ORDER BY created_at, id
	`, zoneColumns)

	return r.queryZones(ctx, query)
}

// GetZoneByID retrieves a single zone.
func (r *Repository) GetZoneByID(ctx context.Context, id uuid.UUID) (*Zone, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM zones
		WHERE id = $1
	`, zoneColumns)

	zone, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id}, scanZoneRow)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	return zone, nil
}

func (r *Repository) queryZones(ctx context.Context, query string) ([]*Zone, error) {
	zones, err := database.RetryableQuery(ctx, r.db, query, nil, scanZoneRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	return zones, nil
}

func scanZoneRow(row pgx.Row) (*Zone, error) {
	var raw []byte
	z := &Zone{}
	err := row.Scan(
		&z.ID, &z.Name, &z.Description, &raw, &z.Surcharge,
		&z.IsActive, &z.Color, &z.AreaKm2, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	normalizeZone(z, raw)
	return z, nil
}

func scanZoneRows(rows pgx.Rows) ([]*Zone, error) {
	result := make([]*Zone, 0)
	for rows.Next() {
		z, err := scanZoneRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		result = append(result, z)
	}
	return result, rows.Err()
}

// normalizeZone is the single normalization step between the loosely-typed
// stored document and the strict Zone shape. A zone with unparsable
// coordinates keeps an empty boundary, so it can never match during
// resolution; the resolver treats it as skip, not as an error.
func normalizeZone(z *Zone, rawCoordinates []byte) {
	if z.Surcharge <= 0 {
		z.Surcharge = 1
	}

	boundary, err := parseBoundary(rawCoordinates)
	if err != nil {
		logger.Warn("zone has malformed coordinates, excluding from resolution",
			zap.String("zone_id", z.ID.String()),
			zap.String("zone_name", z.Name),
			zap.Error(err),
		)
		z.Boundary = geo.Polygon{}
		return
	}
	z.Boundary = boundary
}

// parseBoundary decodes the stored JSONB coordinates: an array of rings, each
// ring an array of [lng, lat] pairs. The first ring is the outer boundary,
// the rest are holes.
func parseBoundary(raw []byte) (geo.Polygon, error) {
	if len(raw) == 0 {
		return geo.Polygon{}, fmt.Errorf("empty coordinates")
	}

	var rings [][][2]float64
	if err := json.Unmarshal(raw, &rings); err != nil {
		return geo.Polygon{}, fmt.Errorf("decode coordinates: %w", err)
	}
	if len(rings) == 0 {
		return geo.Polygon{}, fmt.Errorf("no rings")
	}

	polygon := geo.Polygon{Outer: toRing(rings[0])}
	for _, hole := range rings[1:] {
		polygon.Holes = append(polygon.Holes, toRing(hole))
	}
	return polygon, nil
}

func toRing(pairs [][2]float64) geo.Ring {
	ring := make(geo.Ring, 0, len(pairs))
	for _, p := range pairs {
		ring = append(ring, geo.Point{Lng: p[0], Lat: p[1]})
	}
	return ring
}
