package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "waktu-solat:resource:"

// redisClient is the subset of *redis.Client the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache stores entries in Redis, letting several server instances
// share one copy of each table. Expiry is handled by Redis itself.
type RedisCache struct {
	rdb redisClient
	ttl time.Duration
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr, password string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get implements Cache. Connection errors are treated as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put implements Cache.
func (c *RedisCache) Put(ctx context.Context, key string, data []byte) error {
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to add %s to redis: %w", key, err)
	}
	return nil
}

// Ping checks the connection. Only available for a real client.
func (c *RedisCache) Ping(ctx context.Context) error {
	rdb, ok := c.rdb.(*redis.Client)
	if !ok {
		return nil
	}
	return rdb.Ping(ctx).Err()
}
