// Package cache stores short-lived computed values, such as debt summaries,
// in Redis or in process memory.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a namespaced string cache.
type Cache interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*MemoryCache)(nil)
)

// RedisCache implements Cache on top of a Redis server.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(addr, password string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
	}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, namespace, key string) (string, error) {
	val, err := c.client.Get(ctx, namespace+":"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (c *RedisCache) Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, namespace+":"+key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, namespace, key string) error {
	return c.client.Del(ctx, namespace+":"+key).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryCache implements Cache in process memory. Used when no Redis server
// is configured and in tests.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, namespace, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := namespace + ":" + key
	entry, ok := c.data[k]
	if !ok {
		return "", ErrMiss
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.data, k)
		return "", ErrMiss
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(_ context.Context, namespace, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.data[namespace+":"+key] = entry
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, namespace, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, namespace+":"+key)
	return nil
}
