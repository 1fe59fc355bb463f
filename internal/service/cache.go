package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrilens/backend/internal/models"
)

// DefaultCacheTTL is how long a text analysis stays servable from
// cache. Short on purpose: estimates are cheap to refresh and the
// cache only exists to absorb immediate duplicate submissions.
const DefaultCacheTTL = 15 * time.Minute

// AnalysisCache stores successful text analyses in Redis keyed on the
// normalized description. Image analyses are never cached. A nil
// *AnalysisCache is valid and disables caching.
type AnalysisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewAnalysisCache creates a cache backed by the given Redis client.
func NewAnalysisCache(client *redis.Client, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AnalysisCache{
		redis: client,
		ttl:   ttl,
	}
}

// GetText returns a cached result for the description, if any. Cache
// errors are tolerated silently; a miss is the worst outcome.
func (c *AnalysisCache) GetText(ctx context.Context, text string) (*models.FoodAnalysisResult, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, textKey(text)).Bytes()
	if err != nil {
		return nil, false
	}

	var result models.FoodAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// SetText caches a successful text analysis.
func (c *AnalysisCache) SetText(ctx context.Context, text string, result *models.FoodAnalysisResult) {
	if c == nil || c.redis == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, textKey(text), data, c.ttl).Err(); err != nil {
		log.Printf("[AnalysisCache] failed to cache analysis: %v", err)
	}
}

// textKey normalizes a description into a cache key: lowercased with
// whitespace runs collapsed, so trivially re-typed queries hit.
func textKey(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	return "analysis:text:" + normalized
}
