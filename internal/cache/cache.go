package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
)

// Cache holds aggregation results keyed by scope and month. Errors from
// a backing store are never fatal to a request; callers fall through to
// the database.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	InvalidatePeriod(ctx context.Context, p period.Period)
}

// Key builds "usage:<kind>:<level>:<id>:<yyyy-mm>". InvalidatePeriod relies on
// the month being the last segment.
func Key(kind string, level model.Level, id uint, p period.Period) string {
	return fmt.Sprintf("usage:%s:%s:%d:%s", kind, level, id, p.Key())
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) bool   { return false }
func (NoopCache) Set(context.Context, string, interface{})        {}
func (NoopCache) InvalidatePeriod(context.Context, period.Period) {}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a RedisCache, or NoopCache when client is nil.
func New(client *redis.Client, ttl time.Duration) Cache {
	if client == nil {
		return NoopCache{}
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
		return false
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[WARN] cache set %s: %v", key, err)
	}
}

func (c *RedisCache) InvalidatePeriod(ctx context.Context, p period.Period) {
	var cursor uint64
	pattern := "usage:*:" + p.Key()
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Printf("[WARN] cache scan %s: %v", pattern, err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Printf("[WARN] cache del %s: %v", pattern, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
