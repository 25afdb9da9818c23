package cache

import (
	"context"
	"time"
)

// Recorder receives cache telemetry events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic and should return quickly.
type Recorder interface {
	// Hit is called when a lookup returns a cached handle.
	Hit(ctx context.Context)

	// Miss is called when a lookup falls through to a build.
	Miss(ctx context.Context)

	// Eviction is called when a full cache drops its oldest entry.
	Eviction(ctx context.Context)

	// Build is called after every build attempt with its duration and
	// error status.
	Build(ctx context.Context, duration time.Duration, err error)

	// Size is called after every insert or eviction with the current
	// entry count.
	Size(ctx context.Context, entries int)
}

// noopRecorder is the Recorder used when none is configured.
type noopRecorder struct{}

func (noopRecorder) Hit(context.Context)                         {}
func (noopRecorder) Miss(context.Context)                        {}
func (noopRecorder) Eviction(context.Context)                    {}
func (noopRecorder) Build(context.Context, time.Duration, error) {}
func (noopRecorder) Size(context.Context, int)                   {}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}
