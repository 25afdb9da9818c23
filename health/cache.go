package health

import (
	"context"
	"fmt"
)

// SizedCache is the view of the engine cache this checker needs.
// *cache.EngineCache satisfies it.
type SizedCache interface {
	Len() int
	Cap() int
}

// CacheCheckerConfig configures the cache capacity checker.
type CacheCheckerConfig struct {
	// WarningThreshold is the fill ratio that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.9 (90%)
	WarningThreshold float64
}

// CacheChecker reports engine cache capacity health. A full cache is not
// a failure (eviction keeps it bounded), but sustained operation at
// capacity means engines are being rebuilt and the cache should grow.
type CacheChecker struct {
	cache  SizedCache
	config CacheCheckerConfig
}

// NewCacheChecker creates a capacity checker for the given cache.
func NewCacheChecker(c SizedCache, config CacheCheckerConfig) *CacheChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold > 1 {
		config.WarningThreshold = 0.9
	}
	return &CacheChecker{cache: c, config: config}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "engine_cache"
}

// Check reports the cache fill ratio.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	entries := c.cache.Len()
	capacity := c.cache.Cap()
	details := map[string]any{
		"entries":  entries,
		"capacity": capacity,
	}

	if capacity > 0 && float64(entries)/float64(capacity) >= c.config.WarningThreshold {
		msg := fmt.Sprintf("cache at %d/%d entries, evictions imminent", entries, capacity)
		return Degraded(msg).WithDetails(details)
	}

	return Healthy(fmt.Sprintf("cache at %d/%d entries", entries, capacity)).WithDetails(details)
}
