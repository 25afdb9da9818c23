// Package config loads configuration from the environment into typed
// structs, with optional .env file support for local development.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Loading errors.
var (
	// ErrNilPointer indicates Load was called with a nil target.
	ErrNilPointer = errors.New("config: nil pointer provided")

	// ErrParsingConfig indicates environment parsing failed.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var dotenvOnce sync.Once

// Load parses environment variables into the provided struct based on
// its `env` field tags. The .env file, if present, is loaded once per
// process before the first parse; a missing file is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration
// required at startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

// CacheConfig configures the engine cache.
type CacheConfig struct {
	// MaxEntries bounds the cache. Matches the documented default of 50.
	MaxEntries int `env:"ENGINE_CACHE_MAX_ENTRIES" envDefault:"50"`

	// SingleFlight collapses concurrent same-key builds into one.
	SingleFlight bool `env:"ENGINE_CACHE_SINGLE_FLIGHT" envDefault:"false"`
}

// PoolConfig configures the widened HTTP transport pool.
type PoolConfig struct {
	MaxIdleConns        int           `env:"HTTP_POOL_MAX_IDLE" envDefault:"100"`
	MaxIdleConnsPerHost int           `env:"HTTP_POOL_MAX_IDLE_PER_HOST" envDefault:"50"`
	IdleConnTimeout     time.Duration `env:"HTTP_POOL_IDLE_TIMEOUT" envDefault:"90s"`
}

// ObserveConfig configures logging and telemetry.
type ObserveConfig struct {
	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	LogStaticAssets bool    `env:"LOG_STATIC_ASSETS" envDefault:"false"`
	GCPProject      string  `env:"GCP_PROJECT"`
	TracingExporter string  `env:"TRACING_EXPORTER" envDefault:"none"`
	TracingSample   float64 `env:"TRACING_SAMPLE_PCT" envDefault:"0.1"`
	MetricsExporter string  `env:"METRICS_EXPORTER" envDefault:"none"`
}

// GuestTokenConfig configures guest token verification.
type GuestTokenConfig struct {
	// Secret signs and verifies guest tokens. Required when embedded
	// dashboards are enabled.
	Secret string `env:"GUEST_TOKEN_JWT_SECRET"`
}
