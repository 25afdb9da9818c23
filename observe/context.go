package observe

import "context"

// RequestInfo carries per-request correlation data through the context.
// It is attached by the request tracker and consumed by the logger.
type RequestInfo struct {
	// ID is the request correlation ID, accepted from X-Request-ID or
	// minted by the tracker.
	ID string

	// TraceID is the Cloud Trace ID extracted from X-Cloud-Trace-Context
	// when present; falls back to ID for log correlation.
	TraceID string

	Method    string
	URL       string
	Path      string
	RemoteIP  string
	Referer   string
	UserAgent string
}

type contextKey int

const requestInfoKey contextKey = iota

// WithRequestInfo returns a new context with request info attached.
func WithRequestInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// RequestInfoFromContext retrieves request info from the context.
// Returns nil outside a tracked request.
func RequestInfoFromContext(ctx context.Context) *RequestInfo {
	info, _ := ctx.Value(requestInfoKey).(*RequestInfo)
	return info
}
