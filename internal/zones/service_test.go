package zones

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

// MockRepository implements RepositoryInterface for testing
type MockRepository struct {
	ListActiveZonesFunc func(ctx context.Context) ([]*Zone, error)
	ListZonesFunc       func(ctx context.Context) ([]*Zone, error)
	GetZoneByIDFunc     func(ctx context.Context, id uuid.UUID) (*Zone, error)
}

func (m *MockRepository) ListActiveZones(ctx context.Context) ([]*Zone, error) {
	if m.ListActiveZonesFunc != nil {
		return m.ListActiveZonesFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) ListZones(ctx context.Context) ([]*Zone, error) {
	if m.ListZonesFunc != nil {
		return m.ListZonesFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) GetZoneByID(ctx context.Context, id uuid.UUID) (*Zone, error) {
	if m.GetZoneByIDFunc != nil {
		return m.GetZoneByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func TestServiceResolveZone(t *testing.T) {
	downtown := testZone("Downtown", true, geo.Polygon{Outer: squareRing(55.2, 25.1, 55.3, 25.2)})
	repo := &MockRepository{
		ListActiveZonesFunc: func(ctx context.Context) ([]*Zone, error) {
			return []*Zone{downtown}, nil
		},
	}
	svc := NewService(repo, nil)

	zone, err := svc.ResolveZone(context.Background(), geo.Point{Lng: 55.25, Lat: 25.15})
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, downtown.ID, zone.ID)

	zone, err = svc.ResolveZone(context.Background(), geo.Point{Lng: 54.0, Lat: 24.0})
	require.NoError(t, err)
	assert.Nil(t, zone)
}

func TestServiceResolveZone_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &MockRepository{
		ListActiveZonesFunc: func(ctx context.Context) ([]*Zone, error) {
			return nil, repoErr
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.ResolveZone(context.Background(), geo.Point{})
	assert.ErrorIs(t, err, repoErr)
}

func TestServiceActiveZones_KeepsInvalidZonesInList(t *testing.T) {
	broken := testZone("Broken", true, geo.Polygon{Outer: geo.Ring{{Lng: 0, Lat: 0}}})
	valid := testZone("Valid", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	repo := &MockRepository{
		ListActiveZonesFunc: func(ctx context.Context) ([]*Zone, error) {
			return []*Zone{broken, valid}, nil
		},
	}
	svc := NewService(repo, nil)

	list, err := svc.ActiveZones(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// The broken zone stays in the list but can never match.
	zone, err := svc.ResolveZone(context.Background(), geo.Point{Lng: 5, Lat: 5})
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, valid.ID, zone.ID)
}

func TestServiceGetZone(t *testing.T) {
	zoneID := uuid.New()
	repo := &MockRepository{
		GetZoneByIDFunc: func(ctx context.Context, id uuid.UUID) (*Zone, error) {
			require.Equal(t, zoneID, id)
			return &Zone{ID: zoneID, Name: "Downtown"}, nil
		},
	}
	svc := NewService(repo, nil)

	zone, err := svc.GetZone(context.Background(), zoneID)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", zone.Name)
}
