package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDArray(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseIDArray([]byte(`["` + a.String() + `","` + b.String() + `"]`))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = parseIDArray(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parseIDArray([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseIDArray([]byte(`["not-a-uuid"]`))
	assert.Error(t, err)
}

func TestNormalizeRule(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps sub-unit surge", func(t *testing.T) {
		rule := testRule(func(r *FareRule) { r.SurgeMultiplier = 0.5 })
		require.True(t, normalizeRule(ctx, rule))
		assert.Equal(t, 1.0, rule.SurgeMultiplier)
	})

	t.Run("keeps surge above one", func(t *testing.T) {
		rule := testRule(func(r *FareRule) { r.SurgeMultiplier = 2.5 })
		require.True(t, normalizeRule(ctx, rule))
		assert.Equal(t, 2.5, rule.SurgeMultiplier)
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		assert.False(t, normalizeRule(ctx, testRule(func(r *FareRule) { r.BasePrice = -1 })))
		assert.False(t, normalizeRule(ctx, testRule(func(r *FareRule) { r.PerKmPrice = -1 })))
		assert.False(t, normalizeRule(ctx, testRule(func(r *FareRule) { r.PerMinutePrice = -1 })))
		assert.False(t, normalizeRule(ctx, testRule(func(r *FareRule) { r.MinFare = -1 })))
	})

	t.Run("nil rule is unusable", func(t *testing.T) {
		assert.False(t, normalizeRule(ctx, nil))
	})
}
