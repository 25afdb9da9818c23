package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/datakimia/enginecache/identity"
)

// DefaultMaxEntries bounds the cache when no capacity is configured.
const DefaultMaxEntries = 50

// BuildFunc constructs the engine handle on a cache miss. It may block on
// network I/O; the cache never holds its lock across the call and imposes
// no timeout of its own.
type BuildFunc func(ctx context.Context) (any, error)

// PrincipalFunc resolves the isolation token of the acting principal.
// Returning an empty string means "no principal known" and maps to
// Sentinel, so anonymous callers share one slot per owner.
type PrincipalFunc func(ctx context.Context) string

// Config configures an EngineCache.
type Config struct {
	// MaxEntries bounds the cache. Zero or negative uses DefaultMaxEntries.
	MaxEntries int

	// Principal resolves the isolation token. Nil reads the identity
	// attached to the context.
	Principal PrincipalFunc

	// Fingerprint supplies the owner configuration digest. Nil disables
	// fingerprinting; every lookup uses Sentinel.
	Fingerprint FingerprintFunc

	// Recorder receives telemetry events. Nil installs a no-op recorder.
	Recorder Recorder

	// SingleFlight collapses concurrent first-time builds for the same
	// key into one build shared by all racers. This is a deliberate
	// strengthening over the default policy, under which concurrent
	// callers may each build their own handle and the last insert wins.
	SingleFlight bool
}

// EngineCache is a bounded, process-lifetime cache of engine handles.
//
// Contract:
//   - Concurrency: safe for concurrent use; one mutex guards the lookup
//     and the insert/evict sections, never the build.
//   - Ownership: stored handles are shared with every caller that
//     retrieves them and are never mutated by the cache. Callers must not
//     assume exclusive mutation rights over a returned handle.
//   - Errors: build errors propagate unchanged and leave no entry behind.
type EngineCache struct {
	mu      sync.Mutex
	entries map[string]any
	order   []string // insertion order, oldest first

	maxEntries  int
	principal   PrincipalFunc
	fingerprint FingerprintFunc
	recorder    Recorder
	group       *singleflight.Group

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates an EngineCache. Construct one per process at startup and
// inject it at call sites; the cache has no package-level instance.
func New(cfg Config) *EngineCache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.Principal == nil {
		cfg.Principal = identity.TokenFromContext
	}
	if cfg.Recorder == nil {
		cfg.Recorder = noopRecorder{}
	}

	c := &EngineCache{
		entries:     make(map[string]any, cfg.MaxEntries),
		maxEntries:  cfg.MaxEntries,
		principal:   cfg.Principal,
		fingerprint: cfg.Fingerprint,
		recorder:    cfg.Recorder,
	}
	if cfg.SingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// GetOrBuild returns the cached handle for the request's key, building
// and inserting one on miss.
//
// A request without an OwnerID cannot be cached and is built directly;
// the cache is neither consulted nor mutated. On a same-key race the new
// handle is inserted unconditionally, overwriting a racer's entry; the
// overwritten handle stays valid for whoever built it.
func (c *EngineCache) GetOrBuild(ctx context.Context, req Request, build BuildFunc) (any, error) {
	if build == nil {
		return nil, ErrNilBuild
	}
	if req.OwnerID == "" {
		return build(ctx)
	}

	key := c.key(ctx, req)

	c.mu.Lock()
	if handle, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		c.recorder.Hit(ctx)
		return handle, nil
	}
	c.misses++
	c.mu.Unlock()
	c.recorder.Miss(ctx)

	handle, err := c.build(ctx, key, build)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
			c.recorder.Eviction(ctx)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = handle
	size := len(c.entries)
	c.mu.Unlock()
	c.recorder.Size(ctx, size)

	return handle, nil
}

// build runs the build function outside the lock, optionally deduplicated
// per key via singleflight.
func (c *EngineCache) build(ctx context.Context, key string, build BuildFunc) (any, error) {
	start := time.Now()
	var handle any
	var err error
	if c.group != nil {
		handle, err, _ = c.group.Do(key, func() (any, error) {
			return build(ctx)
		})
	} else {
		handle, err = build(ctx)
	}
	c.recorder.Build(ctx, time.Since(start), err)
	return handle, err
}

// key composes the cache key, resolving principal and fingerprint through
// the configured collaborators. Both degrade to Sentinel rather than fail.
func (c *EngineCache) key(ctx context.Context, req Request) string {
	principal := c.principal(ctx)

	fingerprint := Sentinel
	if c.fingerprint != nil {
		if fp, err := c.fingerprint(ctx, req.OwnerID); err == nil && fp != "" {
			fingerprint = fp
		}
	}

	return ComposeKey(req, principal, fingerprint)
}

func (c *EngineCache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
	c.evictions++
}

// Len returns the current entry count.
func (c *EngineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cap returns the configured maximum entry count.
func (c *EngineCache) Cap() int {
	return c.maxEntries
}

// Stats returns a snapshot of the cache counters.
func (c *EngineCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   len(c.entries),
	}
}
