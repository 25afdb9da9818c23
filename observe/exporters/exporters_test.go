package exporters

import (
	"context"
	"testing"
)

func TestNewTraceExporter_None(t *testing.T) {
	exp, err := NewTraceExporter(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewTraceExporter(none) failed: %v", err)
	}
	if exp == nil {
		t.Fatal("expected a discard exporter, got nil")
	}
}

func TestNewTraceExporter_Unknown(t *testing.T) {
	if _, err := NewTraceExporter(context.Background(), "zipkin"); err == nil {
		t.Error("unknown trace exporter should fail")
	}
}

func TestNewTraceExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTraceExporter(context.Background(), "otlp"); err == nil {
		t.Error("otlp without an endpoint should fail")
	}
}

func TestNewMetricReader_None(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewMetricReader(none) failed: %v", err)
	}
	if reader == nil {
		t.Fatal("expected a discard reader, got nil")
	}
}

func TestNewMetricReader_Prometheus(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("NewMetricReader(prometheus) failed: %v", err)
	}
	if reader == nil {
		t.Fatal("expected a prometheus reader, got nil")
	}
}

func TestNewMetricReader_Unknown(t *testing.T) {
	if _, err := NewMetricReader(context.Background(), "statsd"); err == nil {
		t.Error("unknown metrics exporter should fail")
	}
}
