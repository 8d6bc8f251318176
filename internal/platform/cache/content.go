package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Content caches serialized public payloads in Redis. Concurrent misses for
// the same key are collapsed into a single build call.
type Content struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewContent constructs a Content cache. A nil client disables caching and
// every Fetch falls through to build.
func NewContent(client *redis.Client, ttl time.Duration) *Content {
	return &Content{client: client, ttl: ttl}
}

// Fetch returns the cached JSON payload for key, filling it via build on a miss.
func (c *Content) Fetch(ctx context.Context, key string, build func(context.Context) (any, error)) ([]byte, error) {
	if c == nil || c.client == nil {
		value, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	}

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		return data, nil
	}

	result := c.group.DoChan(key, func() (interface{}, error) {
		value, err := build(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		// Cache write failures are not fatal: serve the fresh payload anyway.
		c.client.Set(ctx, key, data, c.ttl)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate drops the given keys after a write.
func (c *Content) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}
