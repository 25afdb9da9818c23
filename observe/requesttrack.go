package observe

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the correlation ID, accepted
// inbound for distributed tracing and always echoed on the response.
const RequestIDHeader = "X-Request-ID"

// CloudTraceHeader is the Cloud Trace context header.
// Format: TRACE_ID/SPAN_ID;o=TRACE_TRUE
const CloudTraceHeader = "X-Cloud-Trace-Context"

// TrackerConfig configures the request tracker.
type TrackerConfig struct {
	// Logger receives one access log entry per request. Required.
	Logger Logger

	// Tracer opens a server span per request. Nil disables spans.
	Tracer Tracer

	// LogStaticAssets keeps access logging for static asset requests.
	// Disabled by default to reduce log noise.
	LogStaticAssets bool
}

// RequestTracker is net/http middleware that assigns correlation IDs,
// attaches request info to the context, and emits one structured access
// log entry per request (a replacement for plain-text server access logs).
type RequestTracker struct {
	logger          Logger
	tracer          Tracer
	logStaticAssets bool
}

// NewRequestTracker creates the middleware from the given configuration.
func NewRequestTracker(cfg TrackerConfig) *RequestTracker {
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &RequestTracker{
		logger:          logger.Named("http.access"),
		tracer:          cfg.Tracer,
		logStaticAssets: cfg.LogStaticAssets,
	}
}

// Wrap returns a handler that tracks every request through next.
func (t *RequestTracker) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		info := &RequestInfo{
			ID:        requestID(r),
			TraceID:   cloudTraceID(r),
			Method:    r.Method,
			URL:       r.URL.String(),
			Path:      r.URL.Path,
			RemoteIP:  clientIP(r),
			Referer:   r.Referer(),
			UserAgent: r.UserAgent(),
		}

		ctx := WithRequestInfo(r.Context(), info)
		w.Header().Set(RequestIDHeader, info.ID)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		if t.tracer != nil {
			spanCtx, span := t.tracer.StartSpan(ctx, info)
			ctx = spanCtx
			defer func() { t.tracer.EndSpan(span, rw.status) }()
		}

		next.ServeHTTP(rw, r.WithContext(ctx))

		if !t.logStaticAssets && isStaticAsset(r.URL.Path) {
			return
		}

		duration := time.Since(start)
		t.logger.Info(ctx, r.Method+" "+r.URL.Path+" "+r.Proto,
			Field{Key: "http_status_code", Value: rw.status},
			Field{Key: "response_size_bytes", Value: rw.size},
			Field{Key: "duration_ms", Value: duration.Milliseconds()},
		)
	})
}

// requestID accepts an inbound correlation ID or mints a new one.
func requestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// cloudTraceID extracts the trace ID from the Cloud Trace header.
func cloudTraceID(r *http.Request) string {
	header := r.Header.Get(CloudTraceHeader)
	if header == "" {
		return ""
	}
	traceID, _, _ := strings.Cut(header, "/")
	return traceID
}

// clientIP prefers the first X-Forwarded-For hop over the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return r.RemoteAddr
}

var staticAssetPrefixes = []string{
	"/static/",
	"/api/v1/assets/",
}

var staticAssetSuffixes = []string{
	".js", ".css", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf", ".eot", ".map",
}

func isStaticAsset(path string) bool {
	path = strings.ToLower(path)
	for _, prefix := range staticAssetPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, suffix := range staticAssetSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// responseWriter captures status and body size for access logging.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
