package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/datakimia/enginecache/cache"
)

// CacheMetrics records engine cache telemetry through OpenTelemetry.
// It implements cache.Recorder; wire it in via cache.Config.Recorder.
type CacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
	buildDur  metric.Float64Histogram
	size      metric.Int64Gauge
}

// NewCacheMetrics creates cache metrics on the given meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	hits, err := meter.Int64Counter(
		"engine.cache.hits",
		metric.WithDescription("Engine cache lookups served from cache"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"engine.cache.misses",
		metric.WithDescription("Engine cache lookups that fell through to a build"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"engine.cache.evictions",
		metric.WithDescription("Entries dropped by FIFO eviction"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	buildDur, err := meter.Float64Histogram(
		"engine.cache.build_duration_ms",
		metric.WithDescription("Engine build duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	size, err := meter.Int64Gauge(
		"engine.cache.size",
		metric.WithDescription("Current engine cache entry count"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &CacheMetrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		buildDur:  buildDur,
		size:      size,
	}, nil
}

func (m *CacheMetrics) Hit(ctx context.Context) {
	m.hits.Add(ctx, 1)
}

func (m *CacheMetrics) Miss(ctx context.Context) {
	m.misses.Add(ctx, 1)
}

func (m *CacheMetrics) Eviction(ctx context.Context) {
	m.evictions.Add(ctx, 1)
}

func (m *CacheMetrics) Build(ctx context.Context, duration time.Duration, err error) {
	m.buildDur.Record(ctx, float64(duration.Milliseconds()),
		metric.WithAttributes(attribute.Bool("build.error", err != nil)))
}

func (m *CacheMetrics) Size(ctx context.Context, entries int) {
	m.size.Record(ctx, int64(entries))
}

// Ensure CacheMetrics implements cache.Recorder.
var _ cache.Recorder = (*CacheMetrics)(nil)
