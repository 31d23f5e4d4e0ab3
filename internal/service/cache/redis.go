package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/metrics"
)

const (
	redisBackend   = "redis"
	planKeyPrefix  = "carbsmart:plan:"
	scanBatchSize  = 100
	defaultPlanTTL = 10 * time.Minute
)

// RedisCache stores plans in Redis as JSON under a common key prefix.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to url (redis://...) and pings it.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultPlanTTL
	}
	return &RedisCache{client: client, ttl: ttl, prefix: planKeyPrefix}
}

// Get returns the cached plan for key. Redis errors are logged and reported
// as misses.
func (c *RedisCache) Get(ctx context.Context, key string) (model.Plan, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation(redisBackend, "get", "miss")
		return model.Plan{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		metrics.RecordCacheOperation(redisBackend, "get", "error")
		return model.Plan{}, false
	}

	var plan model.Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("decode cached plan")
		metrics.RecordCacheOperation(redisBackend, "get", "error")
		return model.Plan{}, false
	}

	metrics.RecordCacheOperation(redisBackend, "get", "hit")
	return plan, true
}

// Set stores plan under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, plan model.Plan) {
	payload, err := json.Marshal(plan)
	if err != nil {
		log.Warn().Err(err).Msg("encode plan for cache")
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis set failed")
		metrics.RecordCacheOperation(redisBackend, "set", "error")
		return
	}
	metrics.RecordCacheOperation(redisBackend, "set", "success")
}

// Invalidate deletes key.
func (c *RedisCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis delete failed")
		return
	}
	metrics.RecordCacheOperation(redisBackend, "invalidate", "success")
}

// Clear deletes every plan key.
func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.deleteWithPrefix(ctx); err != nil {
		log.Warn().Err(err).Msg("redis clear failed")
		return
	}
	metrics.RecordCacheOperation(redisBackend, "clear", "success")
}

// Stop closes the client.
func (c *RedisCache) Stop() {
	_ = c.client.Close()
}

// Ping reports whether Redis is reachable. Used by the readiness probe.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) deleteWithPrefix(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
