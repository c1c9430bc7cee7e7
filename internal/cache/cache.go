// Package cache is the explicit, named cache for computed insight payloads.
// Entries are keyed under a generation counter; importing a dataset bumps
// the generation so stale entries are never served and simply expire.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "insights:gen"

type InsightCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *InsightCache {
	return &InsightCache{rdb: rdb, ttl: ttl}
}

// Key builds the cache key for a metric and its filter parts under the
// current generation.
func (c *InsightCache) Key(ctx context.Context, metric string, parts ...string) string {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		gen = -1 // key never matches, falls through to recompute
	}
	return fmt.Sprintf("insights:v%d:%s:%s", gen, metric, strings.Join(parts, ":"))
}

// Get returns the cached payload for key, or ok=false on miss or error.
func (c *InsightCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores a payload. Failures are ignored; the cache is best effort.
func (c *InsightCache) Set(ctx context.Context, key string, payload []byte) {
	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}

// Bump invalidates all cached insights by advancing the generation.
func (c *InsightCache) Bump(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}
