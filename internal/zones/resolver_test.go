package zones

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
)

func squareRing(lng0, lat0, lng1, lat1 float64) geo.Ring {
	return geo.Ring{
		{Lng: lng0, Lat: lat0},
		{Lng: lng1, Lat: lat0},
		{Lng: lng1, Lat: lat1},
		{Lng: lng0, Lat: lat1},
		{Lng: lng0, Lat: lat0},
	}
}

func testZone(name string, active bool, boundary geo.Polygon) *Zone {
	return &Zone{
		ID:        uuid.New(),
		Name:      name,
		Boundary:  boundary,
		Surcharge: 1,
		IsActive:  active,
	}
}

func TestResolve(t *testing.T) {
	downtown := testZone("Downtown", true, geo.Polygon{Outer: squareRing(55.2, 25.1, 55.3, 25.2)})
	airport := testZone("Airport", true, geo.Polygon{Outer: squareRing(55.33, 25.23, 55.4, 25.28)})
	inactive := testZone("Old Downtown", false, geo.Polygon{Outer: squareRing(55.2, 25.1, 55.3, 25.2)})
	list := []*Zone{inactive, downtown, airport}

	tests := []struct {
		name string
		pt   geo.Point
		want *Zone
	}{
		{"inside downtown", geo.Point{Lng: 55.25, Lat: 25.15}, downtown},
		{"inside airport", geo.Point{Lng: 55.35, Lat: 25.25}, airport},
		{"outside all zones", geo.Point{Lng: 54.0, Lat: 24.0}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.pt, list)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want.ID, got.ID)
		})
	}
}

func TestResolve_InactiveZoneNeverMatches(t *testing.T) {
	z := testZone("Disabled", false, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	assert.Nil(t, Resolve(geo.Point{Lng: 5, Lat: 5}, []*Zone{z}))
}

func TestResolve_OverlapFirstMatchWins(t *testing.T) {
	first := testZone("First", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	second := testZone("Second", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	list := []*Zone{first, second}

	pt := geo.Point{Lng: 5, Lat: 5}
	for i := 0; i < 5; i++ {
		got := Resolve(pt, list)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
	}
}

func TestResolve_InvalidGeometrySkipped(t *testing.T) {
	broken := testZone("Broken", true, geo.Polygon{Outer: geo.Ring{{Lng: 0, Lat: 0}, {Lng: 10, Lat: 10}}})
	valid := testZone("Valid", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	list := []*Zone{broken, valid}

	got := Resolve(geo.Point{Lng: 5, Lat: 5}, list)
	require.NotNil(t, got)
	assert.Equal(t, valid.ID, got.ID)
}

func TestResolve_NilEntries(t *testing.T) {
	valid := testZone("Valid", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})
	got := Resolve(geo.Point{Lng: 5, Lat: 5}, []*Zone{nil, valid})
	require.NotNil(t, got)
	assert.Equal(t, valid.ID, got.ID)
}

func TestInvalidZones(t *testing.T) {
	broken := testZone("Broken", true, geo.Polygon{Outer: geo.Ring{{Lng: 0, Lat: 0}}})
	brokenInactive := testZone("Broken Inactive", false, geo.Polygon{})
	valid := testZone("Valid", true, geo.Polygon{Outer: squareRing(0, 0, 10, 10)})

	invalid := InvalidZones([]*Zone{broken, brokenInactive, valid, nil})
	require.Len(t, invalid, 1)
	assert.Equal(t, broken.ID, invalid[0].ID)
}

func TestComposeSurcharge(t *testing.T) {
	premium := testZone("Premium", true, geo.Polygon{})
	premium.Surcharge = 1.5
	standard := testZone("Standard", true, geo.Polygon{})
	standard.Surcharge = 1.2

	tests := []struct {
		name    string
		pickup  *Zone
		dropoff *Zone
		want    float64
	}{
		{"both nil", nil, nil, 1.0},
		{"pickup only", premium, nil, 1.5},
		{"dropoff only", nil, standard, 1.2},
		{"same zone both ends", premium, premium, 1.5 * 1.5},
		{"cross zone adds premium", premium, standard, 1.5 * 1.2 * CrossZoneMultiplier},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ComposeSurcharge(tc.pickup, tc.dropoff), 1e-9)
		})
	}
}

func TestComposeSurcharge_NonPositiveIgnored(t *testing.T) {
	zero := testZone("Zero", true, geo.Polygon{})
	zero.Surcharge = 0
	negative := testZone("Negative", true, geo.Polygon{})
	negative.Surcharge = -2

	got := ComposeSurcharge(zero, negative)
	assert.InDelta(t, CrossZoneMultiplier, got, 1e-9)
}
