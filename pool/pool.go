// Package pool builds HTTP transports with a widened connection pool for
// chatty upstream APIs (e.g. warehouse query endpoints). The default
// per-host idle pool is too small under load and causes connection churn;
// the transport is constructed explicitly here and handed to clients,
// rather than reconfigured behind the client library's back.
package pool

import (
	"net"
	"net/http"
	"time"
)

// Pool sizing defaults. MaxIdleConnsPerHost is the knob that matters:
// most traffic goes to a single API host.
const (
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 50
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultDialTimeout         = 30 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// Config configures the transport pool.
type Config struct {
	// MaxIdleConns caps idle connections across all hosts.
	// Zero or negative uses DefaultMaxIdleConns.
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections per host.
	// Zero or negative uses DefaultMaxIdleConnsPerHost.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection is kept.
	// Zero uses DefaultIdleConnTimeout.
	IdleConnTimeout time.Duration

	// DialTimeout bounds connection establishment.
	// Zero uses DefaultDialTimeout.
	DialTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	// Zero uses DefaultTLSHandshakeTimeout.
	TLSHandshakeTimeout time.Duration
}

// DefaultConfig returns the widened pool defaults.
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
		DialTimeout:         DefaultDialTimeout,
		TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.TLSHandshakeTimeout == 0 {
		c.TLSHandshakeTimeout = DefaultTLSHandshakeTimeout
	}
	return c
}

// NewTransport builds an http.Transport with the widened pool settings.
func NewTransport(cfg Config) *http.Transport {
	cfg = cfg.withDefaults()

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}
}

// NewClient builds an http.Client on the widened transport. A zero
// timeout means no client-level timeout; per-request deadlines still
// apply through the request context.
func NewClient(cfg Config, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(cfg),
		Timeout:   timeout,
	}
}
