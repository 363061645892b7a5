package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for the derived views. Both are invalidated together on any write
// that can change them.
const (
	KeyGraph  = "derived:graph"
	KeyEvents = "derived:events"
)

// Connect opens and pings a redis client
func Connect(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// Cache stores derived views as JSON blobs with a TTL. A nil *Cache is a
// valid no-op cache, so callers never branch on whether caching is enabled.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

// New creates a cache with the given TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// Get unmarshals the cached value into dst. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.Client == nil {
		return false, nil
	}
	b, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

// Set stores v under key with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	if c == nil || c.Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, b, c.TTL).Err()
}

// Invalidate removes the given keys
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
