package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopedRule(name string, taxiTypes []uuid.UUID, zoneIDs []uuid.UUID, isDefault bool) *FareRule {
	return &FareRule{
		ID:                uuid.New(),
		Name:              name,
		BasePrice:         5,
		PerKmPrice:        2,
		PerMinutePrice:    0.5,
		SurgeMultiplier:   1,
		IsDefault:         isDefault,
		ApplicableZoneIDs: zoneIDs,
		TaxiTypeIDs:       taxiTypes,
		IsActive:          true,
	}
}

func TestResolveFareRule_Cascade(t *testing.T) {
	sedan := uuid.New()
	van := uuid.New()
	downtown := uuid.New()
	airport := uuid.New()

	dualZone := scopedRule("airport transfers", []uuid.UUID{sedan}, []uuid.UUID{downtown, airport}, false)
	pickupOnly := scopedRule("downtown pickups", []uuid.UUID{sedan}, []uuid.UUID{downtown}, false)
	dropoffOnly := scopedRule("airport dropoffs", []uuid.UUID{sedan}, []uuid.UUID{airport}, false)
	sedanDefault := scopedRule("sedan default", []uuid.UUID{sedan}, nil, true)
	globalDefault := scopedRule("global default", nil, nil, true)

	tests := []struct {
		name     string
		taxiType uuid.UUID
		pickup   *uuid.UUID
		dropoff  *uuid.UUID
		rules    []*FareRule
		want     *FareRule
	}{
		{
			name:     "dual-zone wins over everything",
			taxiType: sedan,
			pickup:   &downtown,
			dropoff:  &airport,
			rules:    []*FareRule{globalDefault, sedanDefault, pickupOnly, dualZone},
			want:     dualZone,
		},
		{
			name:     "pickup zone preferred over dropoff",
			taxiType: sedan,
			pickup:   &downtown,
			dropoff:  &airport,
			rules:    []*FareRule{globalDefault, dropoffOnly, pickupOnly},
			want:     pickupOnly,
		},
		{
			name:     "dropoff zone still beats defaults",
			taxiType: sedan,
			pickup:   &downtown,
			dropoff:  &airport,
			rules:    []*FareRule{globalDefault, sedanDefault, dropoffOnly},
			want:     dropoffOnly,
		},
		{
			name:     "single known zone",
			taxiType: sedan,
			pickup:   nil,
			dropoff:  &airport,
			rules:    []*FareRule{sedanDefault, dropoffOnly},
			want:     dropoffOnly,
		},
		{
			name:     "vehicle-class default when no zone matches",
			taxiType: sedan,
			pickup:   nil,
			dropoff:  nil,
			rules:    []*FareRule{globalDefault, pickupOnly, sedanDefault},
			want:     sedanDefault,
		},
		{
			name:     "global default as last resort",
			taxiType: van,
			pickup:   &downtown,
			dropoff:  &airport,
			rules:    []*FareRule{dualZone, pickupOnly, globalDefault, sedanDefault},
			want:     globalDefault,
		},
		{
			name:     "no rule at all",
			taxiType: van,
			pickup:   &downtown,
			dropoff:  nil,
			rules:    []*FareRule{dualZone, pickupOnly},
			want:     nil,
		},
		{
			name:     "empty rule list",
			taxiType: sedan,
			rules:    nil,
			want:     nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveFareRule(tc.taxiType, tc.pickup, tc.dropoff, tc.rules)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want.ID, got.ID)
		})
	}
}

func TestResolveFareRule_FirstMatchInTierWins(t *testing.T) {
	sedan := uuid.New()
	downtown := uuid.New()

	first := scopedRule("first", []uuid.UUID{sedan}, []uuid.UUID{downtown}, false)
	second := scopedRule("second", []uuid.UUID{sedan}, []uuid.UUID{downtown}, false)

	got := ResolveFareRule(sedan, &downtown, nil, []*FareRule{first, second})
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestResolveFareRule_WrongVehicleClassSkipsZoneRules(t *testing.T) {
	sedan := uuid.New()
	van := uuid.New()
	downtown := uuid.New()

	sedanZoneRule := scopedRule("sedan downtown", []uuid.UUID{sedan}, []uuid.UUID{downtown}, false)
	vanDefault := scopedRule("van default", []uuid.UUID{van}, nil, true)

	got := ResolveFareRule(van, &downtown, nil, []*FareRule{sedanZoneRule, vanDefault})
	require.NotNil(t, got)
	assert.Equal(t, vanDefault.ID, got.ID)
}

func TestResolveFareRule_NilEntries(t *testing.T) {
	sedan := uuid.New()
	def := scopedRule("default", []uuid.UUID{sedan}, nil, true)

	got := ResolveFareRule(sedan, nil, nil, []*FareRule{nil, def, nil})
	require.NotNil(t, got)
	assert.Equal(t, def.ID, got.ID)
}
