package cache

import (
	"context"
	"testing"
	"time"

	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	p := period.Period{Year: 2024, Month: 6}
	assert.Equal(t, "usage:dense:branch:3:2024-06", Key("dense", model.LevelBranch, 3, p))
}

func TestNewWithoutClientIsNoop(t *testing.T) {
	c := New(nil, 0)
	_, ok := c.(NoopCache)
	assert.True(t, ok)

	var out map[string]int
	c.Set(context.Background(), "k", map[string]int{"a": 1})
	assert.False(t, c.Get(context.Background(), "k", &out))
	assert.Nil(t, out)
}

type entry struct {
	Total float64 `json:"total"`
}

func newRedisCache(t *testing.T) (*miniredis.Miniredis, Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, New(client, time.Minute)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, c := newRedisCache(t)
	ctx := context.Background()
	key := Key("dense", model.LevelBranch, 1, period.Period{Year: 2024, Month: 6})

	var out entry
	assert.False(t, c.Get(ctx, key, &out))

	c.Set(ctx, key, entry{Total: 250})
	require.True(t, c.Get(ctx, key, &out))
	assert.Equal(t, 250.0, out.Total)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.Get(ctx, key, &out))
}

func TestRedisCacheInvalidatePeriod(t *testing.T) {
	mr, c := newRedisCache(t)
	ctx := context.Background()
	june := period.Period{Year: 2024, Month: 6}
	july := period.Period{Year: 2024, Month: 7}

	var juneKeys []string
	for id := uint(1); id <= 150; id++ {
		k := Key("dense", model.LevelCluster, id, june)
		juneKeys = append(juneKeys, k)
		c.Set(ctx, k, entry{Total: float64(id)})
	}
	treeJune := Key("tree", model.LevelArea, 1, june)
	denseJuly := Key("dense", model.LevelCluster, 1, july)
	c.Set(ctx, treeJune, entry{Total: 1})
	c.Set(ctx, denseJuly, entry{Total: 2})

	c.InvalidatePeriod(ctx, june)

	for _, k := range juneKeys {
		assert.False(t, mr.Exists(k), k)
	}
	assert.False(t, mr.Exists(treeJune))
	assert.True(t, mr.Exists(denseJuly))

	var out entry
	require.True(t, c.Get(ctx, denseJuly, &out))
	assert.Equal(t, 2.0, out.Total)
}

func TestRedisCacheCorruptValueIsMiss(t *testing.T) {
	mr, c := newRedisCache(t)
	key := Key("dense", model.LevelUser, 6001, period.Period{Year: 2024, Month: 6})
	require.NoError(t, mr.Set(key, "{not json"))

	var out entry
	assert.False(t, c.Get(context.Background(), key, &out))
}
