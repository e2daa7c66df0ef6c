package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when nothing is cached under the key.
var ErrMiss = errors.New("cache miss")

// GridCache stores day grid inputs keyed per location.
// Get reports the location's version it looked at, also on a miss; Set writes under that
// version, so an Invalidate in between orphans the write instead of publishing stale data.
// Invalidate drops every entry of one location.
type GridCache interface {
	Get(ctx context.Context, locationID, key string) (value []byte, version int64, err error)
	Set(ctx context.Context, locationID string, version int64, key string, value []byte) error
	Invalidate(ctx context.Context, locationID string) error
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient connects and pings Redis with a short timeout.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// RedisGridCache keeps one version counter per location; entries are stored under
// the current version, so bumping the counter orphans all of them at once and the TTL reaps them.
type RedisGridCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGridCache(client *redis.Client, ttl time.Duration) *RedisGridCache {
	return &RedisGridCache{client: client, ttl: ttl}
}

func versionKey(locationID string) string {
	return "grid:ver:" + locationID
}

func entryKey(locationID string, version int64, key string) string {
	return fmt.Sprintf("grid:%s:%d:%s", locationID, version, key)
}

func (c *RedisGridCache) version(ctx context.Context, locationID string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(locationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get grid version failed: %w", err)
	}
	return v, nil
}

func (c *RedisGridCache) Get(ctx context.Context, locationID, key string) ([]byte, int64, error) {
	v, err := c.version(ctx, locationID)
	if err != nil {
		return nil, 0, err
	}
	b, err := c.client.Get(ctx, entryKey(locationID, v, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, ErrMiss
	}
	if err != nil {
		return nil, v, fmt.Errorf("get grid entry failed: %w", err)
	}
	return b, v, nil
}

func (c *RedisGridCache) Set(ctx context.Context, locationID string, version int64, key string, value []byte) error {
	if err := c.client.Set(ctx, entryKey(locationID, version, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("set grid entry failed: %w", err)
	}
	return nil
}

func (c *RedisGridCache) Invalidate(ctx context.Context, locationID string) error {
	if err := c.client.Incr(ctx, versionKey(locationID)).Err(); err != nil {
		return fmt.Errorf("bump grid version failed: %w", err)
	}
	return nil
}

// Noop is used when Redis is not configured. Every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string, string) ([]byte, int64, error)  { return nil, 0, ErrMiss }
func (Noop) Set(context.Context, string, int64, string, []byte) error { return nil }
func (Noop) Invalidate(context.Context, string) error                 { return nil }
