// Package cache is an optional Redis read-through cache used by the public
// business search. A nil *Cache disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultTTL = 60 * time.Second

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &Cache{
		client: redis.NewClient(opt),
		ttl:    defaultTTL,
	}, nil
}

// Get unmarshals the cached value into dest, reporting whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(b, dest) == nil
}

// Set stores the value best-effort; cache failures never surface to callers.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, b, c.ttl)
}
