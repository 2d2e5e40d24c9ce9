// Package catalog serves the active career catalog through a Redis read-through cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/recommendation"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "careers:active"

// Source is the system of record for the catalog.
type Source interface {
	ListActive(ctx context.Context) ([]recommendation.CareerDefinition, error)
}

type Cache struct {
	redis  *redis.Client
	source Source
	ttl    time.Duration
	key    string
	logger logger.Logger
}

// NewCache builds a cache over source. A nil redis client reads straight from source.
func NewCache(rdb *redis.Client, source Source, ttl time.Duration, log logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{redis: rdb, source: source, ttl: ttl, key: DefaultKey, logger: log}
}

// Load returns the cached catalog, falling back to the source on a miss or any Redis error.
func (c *Cache) Load(ctx context.Context) ([]recommendation.CareerDefinition, error) {
	if c.redis != nil {
		val, err := c.redis.Get(ctx, c.key).Result()
		switch {
		case err == nil:
			var careers []recommendation.CareerDefinition
			if jsonErr := json.Unmarshal([]byte(val), &careers); jsonErr == nil {
				metrics.CatalogCacheHits.Inc()
				return careers, nil
			}
			c.logger.Warn("discarding undecodable catalog cache entry", map[string]interface{}{"key": c.key})
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("catalog cache read failed", map[string]interface{}{"key": c.key, "error": err.Error()})
		}
	}

	metrics.CatalogCacheMisses.Inc()
	careers, err := c.source.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load career catalog: %w", err)
	}
	c.store(ctx, careers)
	return careers, nil
}

// Refresh reloads the catalog from the source and overwrites the cache entry.
func (c *Cache) Refresh(ctx context.Context) ([]recommendation.CareerDefinition, error) {
	careers, err := c.source.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load career catalog: %w", err)
	}
	c.store(ctx, careers)
	return careers, nil
}

func (c *Cache) store(ctx context.Context, careers []recommendation.CareerDefinition) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(careers)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, c.key, string(data), c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", map[string]interface{}{"key": c.key, "error": err.Error()})
	}
}
