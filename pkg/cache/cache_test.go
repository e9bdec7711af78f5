package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/jezhtech/fc-fleet-sub002/pkg/redis"
)

type testRule struct {
	ID        string  `json:"id"`
	BasePrice float64 `json:"base_price"`
}

func newTestManager(t *testing.T) (*Manager, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewManager(&redisclient.Client{Client: db}), mock
}

func TestManagerGet_Hit(t *testing.T) {
	manager, mock := newTestManager(t)

	cached, err := json.Marshal(testRule{ID: "rule-1", BasePrice: 5})
	require.NoError(t, err)
	mock.ExpectGet("fares:rules:active").SetVal(string(cached))

	var result testRule
	err = manager.Get(context.Background(), "fares:rules:active", &result)
	require.NoError(t, err)
	assert.Equal(t, "rule-1", result.ID)
	assert.Equal(t, 5.0, result.BasePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerGet_Miss(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.ExpectGet("missing").RedisNil()

	var result testRule
	err := manager.Get(context.Background(), "missing", &result)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerGet_InvalidJSON(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.ExpectGet("bad").SetVal("not json")

	var result testRule
	err := manager.Get(context.Background(), "bad", &result)
	require.Error(t, err)
}

func TestManagerSet(t *testing.T) {
	manager, mock := newTestManager(t)

	value := testRule{ID: "rule-2", BasePrice: 3.5}
	data, err := json.Marshal(value)
	require.NoError(t, err)
	mock.ExpectSet("fares:rules:active", string(data), time.Minute).SetVal("OK")

	err = manager.Set(context.Background(), "fares:rules:active", value, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerGetOrSet_CacheHit(t *testing.T) {
	manager, mock := newTestManager(t)

	cached, err := json.Marshal(testRule{ID: "cached"})
	require.NoError(t, err)
	mock.ExpectGet("key").SetVal(string(cached))

	var result testRule
	err = manager.GetOrSet(context.Background(), "key", time.Minute, &result, func() (interface{}, error) {
		t.Fatal("loader must not run on cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", result.ID)
}

func TestManagerGetOrSet_CacheMiss(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.MatchExpectationsInOrder(false)

	fresh := testRule{ID: "fresh", BasePrice: 7}
	data, err := json.Marshal(fresh)
	require.NoError(t, err)

	mock.ExpectGet("key").RedisNil()
	// The write-back happens on a background goroutine and may or may not
	// land before the test finishes, so it is registered but not asserted.
	mock.ExpectSet("key", string(data), time.Minute).SetVal("OK")

	var result testRule
	err = manager.GetOrSet(context.Background(), "key", time.Minute, &result, func() (interface{}, error) {
		return fresh, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", result.ID)
	assert.Equal(t, 7.0, result.BasePrice)
}

func TestManagerGetOrSet_LoaderError(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.ExpectGet("key").RedisNil()

	loadErr := errors.New("database unavailable")
	var result testRule
	err := manager.GetOrSet(context.Background(), "key", time.Minute, &result, func() (interface{}, error) {
		return nil, loadErr
	})
	require.ErrorIs(t, err, loadErr)
}

func TestManagerDelete(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.ExpectDel("a", "b").SetVal(2)

	err := manager.Delete(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerInvalidate(t *testing.T) {
	manager, mock := newTestManager(t)
	mock.ExpectScan(0, "fares:*", 100).SetVal([]string{"fares:rules:active", "fares:route:abc"}, 0)
	mock.ExpectDel("fares:rules:active", "fares:route:abc").SetVal(2)

	err := manager.Invalidate(context.Background(), "fares:*")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "zones:active", Keys.ActiveZones())
	assert.Equal(t, "fares:rules:active", Keys.ActiveRules())
	assert.Equal(t, "fares:route:8a2a1072b59ffff", Keys.Route("8a2a1072b59ffff"))
}

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, 30*time.Second, TTL.Route())
	assert.Equal(t, time.Minute, TTL.Zones())
	assert.Equal(t, time.Minute, TTL.Rules())
}
