// Package cache provides Redis-backed caching for search results.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/database"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// SearchCache stores normalized search result pages keyed by query and
// locale. A provider page is expensive and rate-limited; within the TTL the
// same question gets the same market sample.
type SearchCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger *logrus.Logger
}

func NewSearchCache(redis *database.RedisClient, ttl time.Duration, logger *logrus.Logger) *SearchCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SearchCache{redis: redis, ttl: ttl, logger: logger}
}

// Key normalizes a query+locale pair into a cache key. Case and surrounding
// whitespace do not fragment the cache.
func Key(query, locale string) string {
	return fmt.Sprintf("search:%s:%s", strings.ToLower(strings.TrimSpace(query)), strings.ToLower(locale))
}

// Get returns the cached result page, or ok=false on miss or decode failure.
// A corrupt entry is treated as a miss so it gets overwritten.
func (c *SearchCache) Get(ctx context.Context, query, locale string) ([]models.Product, bool) {
	raw, err := c.redis.Get(ctx, Key(query, locale))
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("dropping corrupt search cache entry")
		}
		_ = c.redis.Delete(ctx, Key(query, locale))
		return nil, false
	}
	return products, true
}

// Set stores a result page under the configured TTL.
func (c *SearchCache) Set(ctx context.Context, query, locale string, products []models.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode search results: %w", err)
	}
	return c.redis.Set(ctx, Key(query, locale), payload, c.ttl)
}

// Invalidate drops a cached page, used when a stale result is reported.
func (c *SearchCache) Invalidate(ctx context.Context, query, locale string) error {
	return c.redis.Delete(ctx, Key(query, locale))
}
