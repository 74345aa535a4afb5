package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"traveldest/client/models"
)

type redisCache struct {
	r   *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to the configured redis instance. Entries
// expire after the configured TTL so the cache stays a cache, not a
// second source of truth.
func NewRedisCache(ctx context.Context, config models.CacheConfig) (Cache, error) {
	r := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	ttl := time.Duration(config.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{r: r, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.r.Get(ctx, key).Bytes()
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.r.Set(ctx, key, value, c.ttl).Err()
}

func (c *redisCache) Close() error {
	return c.r.Close()
}
