package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dracarys/library/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a counter is not cached
var ErrMiss = errors.New("cache miss")

// StatCache keeps dashboard counters in Redis so repeated dashboard loads
// do not re-run the aggregate queries. A nil *StatCache is valid and
// behaves as an always-miss cache, which is how the server runs when Redis
// is disabled.
type StatCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatCache connects to Redis using the given configuration. Returns
// nil without error when Redis is disabled.
func NewStatCache(cfg config.RedisConfig) (*StatCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &StatCache{client: client, ttl: cfg.StatTTL}, nil
}

// NewStatCacheWithClient wraps an existing Redis client, useful in tests
func NewStatCacheWithClient(client *redis.Client, ttl time.Duration) *StatCache {
	return &StatCache{client: client, ttl: ttl}
}

// GetInt64 returns the cached counter, or ErrMiss
func (c *StatCache) GetInt64(ctx context.Context, key string) (int64, error) {
	if c == nil {
		return 0, ErrMiss
	}

	val, err := c.client.Get(ctx, "stats:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cached stat: %w", err)
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrMiss
	}
	return n, nil
}

// SetInt64 caches a counter for the configured TTL
func (c *StatCache) SetInt64(ctx context.Context, key string, value int64) error {
	if c == nil {
		return nil
	}
	if err := c.client.Set(ctx, "stats:"+key, strconv.FormatInt(value, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stat: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *StatCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
