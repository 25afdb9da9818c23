package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing with request span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a server span for the tracked request.
	StartSpan(ctx context.Context, info *RequestInfo) (context.Context, trace.Span)

	// EndSpan ends the span, recording the response status code.
	EndSpan(span trace.Span, statusCode int)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps the given OpenTelemetry tracer for request tracking.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, info *RequestInfo) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", info.Method),
		attribute.String("url.path", info.Path),
	}
	if info.ID != "" {
		attrs = append(attrs, attribute.String("http.request_id", info.ID))
	}
	if info.UserAgent != "" {
		attrs = append(attrs, attribute.String("user_agent.original", info.UserAgent))
	}

	return t.tracer.Start(ctx, info.Method+" "+info.Path,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, statusCode int) {
	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	if statusCode >= 500 {
		span.SetStatus(codes.Error, "")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, info *RequestInfo) (context.Context, trace.Span) {
	return t.noop.Start(ctx, info.Method+" "+info.Path)
}

func (t *noopTracer) EndSpan(span trace.Span, statusCode int) {
	span.End()
}
