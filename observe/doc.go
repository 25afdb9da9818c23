// Package observe provides the observability layer: a Cloud Logging
// compatible JSON logger, request-tracking HTTP middleware, OpenTelemetry
// metrics for the engine cache, and the exporter bootstrap.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. The embedding application wires the middleware
// into its router and the recorder into its cache.
package observe
