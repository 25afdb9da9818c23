package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "enginecache",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "stdout",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestConfigValidate_MissingServiceName(t *testing.T) {
	cfg := Config{}

	if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("err = %v, want ErrMissingServiceName", err)
	}
}

func TestConfigValidate_UnknownTracingExporter(t *testing.T) {
	cfg := Config{
		ServiceName: "enginecache",
		Tracing:     TracingConfig{Exporter: "graphite"},
	}

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("err = %v, want ErrInvalidTracingExporter", err)
	}
}

func TestConfigValidate_UnknownMetricsExporter(t *testing.T) {
	cfg := Config{
		ServiceName: "enginecache",
		Metrics:     MetricsConfig{Exporter: "statsd"},
	}

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidMetricsExporter) {
		t.Errorf("err = %v, want ErrInvalidMetricsExporter", err)
	}
}

func TestConfigValidate_SamplePctOutOfRange(t *testing.T) {
	for _, pct := range []float64{-0.1, 1.5} {
		cfg := Config{
			ServiceName: "enginecache",
			Tracing:     TracingConfig{Exporter: "stdout", SamplePct: pct},
		}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamplePct) {
			t.Errorf("SamplePct=%v: err = %v, want ErrInvalidSamplePct", pct, err)
		}
	}
}

func TestConfigValidate_UnknownLogLevel(t *testing.T) {
	cfg := Config{
		ServiceName: "enginecache",
		Logging:     LoggingConfig{Level: "verbose"},
	}

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("err = %v, want ErrInvalidLogLevel", err)
	}
}

func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "enginecache"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil {
		t.Error("disabled tracing should still yield a noop tracer")
	}
	if obs.Meter() == nil {
		t.Error("disabled metrics should still yield a noop meter")
	}
	if obs.Logger() == nil {
		t.Error("disabled logging should still yield a noop logger")
	}
}

func TestNewObserver_StdoutExporters(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "enginecache",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}
