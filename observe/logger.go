package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/datakimia/enginecache/identity"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level. Unknown levels map to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Severity returns the Cloud Logging severity name for this level.
func (l LogLevel) Severity() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// Named returns a logger whose entries carry the given logger name.
	Named(name string) Logger
}

// LoggerConfig configures the Cloud Logging JSON logger.
type LoggerConfig struct {
	// Level is the minimum level to emit: debug|info|warn|error.
	Level string

	// Writer receives one JSON object per line. Default: os.Stderr.
	Writer io.Writer

	// Project is the cloud project used to build the trace resource path
	// (projects/<project>/traces/<id>). Empty disables the trace field.
	Project string

	// Name is the default logger name recorded in entries.
	Name string
}

// gcpLogger emits Cloud Logging compatible JSON entries, enriched with
// whatever request and identity context is attached to the ctx.
type gcpLogger struct {
	level   LogLevel
	writer  io.Writer
	project string
	name    string
	mu      *sync.Mutex
}

// NewLogger creates a structured logger from the given configuration.
func NewLogger(cfg LoggerConfig) Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	return &gcpLogger{
		level:   ParseLogLevel(cfg.Level),
		writer:  w,
		project: cfg.Project,
		name:    cfg.Name,
		mu:      &sync.Mutex{},
	}
}

func (l *gcpLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *gcpLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *gcpLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *gcpLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *gcpLogger) Named(name string) Logger {
	clone := *l
	clone.name = name
	return &clone
}

var ansiEscapeRE = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

func stripANSI(s string) string {
	return ansiEscapeRE.ReplaceAllString(s, "")
}

func (l *gcpLogger) log(ctx context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(fields)+8)
	entry["severity"] = level.Severity()
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["message"] = stripANSI(msg)
	if l.name != "" {
		entry["logger"] = l.name
	}

	l.addRequestContext(ctx, entry)
	l.addIdentityContext(ctx, entry)

	for _, f := range fields {
		if isRedactedField(f.Key) {
			entry[f.Key] = "[REDACTED]"
			continue
		}
		if s, ok := f.Value.(string); ok {
			entry[f.Key] = stripANSI(s)
		} else {
			entry[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return // drop malformed entries rather than fail the caller
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// addRequestContext folds the tracked request into the entry: correlation
// ID, trace resource path, and an httpRequest block shaped for the Cloud
// Logs Explorer.
func (l *gcpLogger) addRequestContext(ctx context.Context, entry map[string]any) {
	info := RequestInfoFromContext(ctx)
	if info == nil {
		return
	}

	if info.ID != "" {
		entry["request_id"] = info.ID
	}

	traceID := info.TraceID
	if traceID == "" {
		traceID = info.ID
	}
	if traceID != "" && l.project != "" {
		entry["trace"] = "projects/" + l.project + "/traces/" + traceID
	}

	httpRequest := map[string]any{}
	if info.Method != "" {
		httpRequest["requestMethod"] = info.Method
	}
	if info.URL != "" {
		httpRequest["requestUrl"] = info.URL
	}
	if info.Path != "" {
		httpRequest["requestPath"] = info.Path
	}
	if info.RemoteIP != "" {
		httpRequest["remoteIp"] = info.RemoteIP
	}
	if info.Referer != "" {
		httpRequest["referer"] = info.Referer
	}
	if info.UserAgent != "" {
		httpRequest["userAgent"] = info.UserAgent
	}
	if len(httpRequest) > 0 {
		entry["httpRequest"] = httpRequest
	}
}

func (l *gcpLogger) addIdentityContext(ctx context.Context, entry map[string]any) {
	id := identity.FromContext(ctx)
	if id == nil {
		return
	}
	if id.ID != "" {
		entry["user_id"] = id.ID
	}
	if id.Username != "" {
		entry["username"] = id.Username
	}
}

func isRedactedField(key string) bool {
	for _, k := range RedactedFields {
		if key == k {
			return true
		}
	}
	return false
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...Field) {}
func (noopLogger) Info(context.Context, string, ...Field)  {}
func (noopLogger) Warn(context.Context, string, ...Field)  {}
func (noopLogger) Error(context.Context, string, ...Field) {}
func (l noopLogger) Named(string) Logger                   { return l }

// Ensure implementations satisfy Logger.
var (
	_ Logger = (*gcpLogger)(nil)
	_ Logger = noopLogger{}
)
