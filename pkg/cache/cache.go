package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const DecisionKeyPattern = "decision:%s"

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Cache wraps the shared redis client with a write-through local layer for
// hot read paths. Local entries carry the redis expiration so they never
// outlive the authoritative copy.
type Cache struct {
	client     *redis.Client
	localCache sync.Map
}

type localEntry struct {
	value     string
	expiresAt time.Time
}

func (e localEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

func NewCache(cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}, nil
}

// NewCacheWithClient is used by tests to inject a redismock client.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if value, ok := c.localCache.Load(key); ok {
		entry, err := safeEntryCast(value)
		if err != nil {
			return "", fmt.Errorf("cache value error: %w", err)
		}
		if !entry.expired() {
			return entry.value, nil
		}
		c.localCache.Delete(key)
	}
	return c.client.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return err
	}
	entry := localEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	c.localCache.Store(key, entry)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	c.localCache.Delete(key)
	return nil
}

// Client exposes the raw redis client for list and scan operations.
func (c *Cache) Client() *redis.Client {
	return c.client
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func safeEntryCast(value interface{}) (localEntry, error) {
	entry, ok := value.(localEntry)
	if !ok {
		return localEntry{}, fmt.Errorf("expected cache entry, got %T", value)
	}
	return entry, nil
}
