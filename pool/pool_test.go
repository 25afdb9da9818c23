package pool

import (
	"net/http"
	"testing"
	"time"
)

func TestNewTransport_Defaults(t *testing.T) {
	tr := NewTransport(Config{})

	if tr.MaxIdleConnsPerHost != DefaultMaxIdleConnsPerHost {
		t.Errorf("MaxIdleConnsPerHost = %d, want %d", tr.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost)
	}
	if tr.MaxIdleConns != DefaultMaxIdleConns {
		t.Errorf("MaxIdleConns = %d, want %d", tr.MaxIdleConns, DefaultMaxIdleConns)
	}
	if tr.IdleConnTimeout != DefaultIdleConnTimeout {
		t.Errorf("IdleConnTimeout = %v, want %v", tr.IdleConnTimeout, DefaultIdleConnTimeout)
	}
	if !tr.ForceAttemptHTTP2 {
		t.Error("transport should attempt HTTP/2")
	}
}

func TestNewTransport_Overrides(t *testing.T) {
	tr := NewTransport(Config{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 80,
		IdleConnTimeout:     time.Minute,
	})

	if tr.MaxIdleConns != 200 {
		t.Errorf("MaxIdleConns = %d, want 200", tr.MaxIdleConns)
	}
	if tr.MaxIdleConnsPerHost != 80 {
		t.Errorf("MaxIdleConnsPerHost = %d, want 80", tr.MaxIdleConnsPerHost)
	}
	if tr.IdleConnTimeout != time.Minute {
		t.Errorf("IdleConnTimeout = %v, want 1m", tr.IdleConnTimeout)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(DefaultConfig(), 30*time.Second)

	if client.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.Timeout)
	}
	tr, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport is %T, want *http.Transport", client.Transport)
	}
	if tr.MaxIdleConnsPerHost != DefaultMaxIdleConnsPerHost {
		t.Errorf("MaxIdleConnsPerHost = %d, want %d", tr.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost)
	}
}
