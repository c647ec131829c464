package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisOpTimeout = 500 * time.Millisecond

// RedisCache shares JSON encoded values between replicas. Redis failures are
// logged and reported as misses so callers fall back to the source of truth.
type RedisCache[V any] struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
	log       *zap.Logger
}

func NewRedisCache[V any](client redis.UniversalClient, prefix string, log *zap.Logger) *RedisCache[V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache[V]{
		client:    client,
		prefix:    prefix,
		opTimeout: defaultRedisOpTimeout,
		log:       log.Named("cache.redis"),
	}
}

func (c *RedisCache[V]) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.client == nil {
		return zero, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return zero, false
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		c.log.Warn("redis value decode failed", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return value, true
}

func (c *RedisCache[V]) Set(key string, value V, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("redis value encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()
	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		c.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache[V]) Delete(key string) {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.Warn("redis delete failed", zap.String("key", key), zap.Error(err))
	}
}
