package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNilBuild indicates GetOrBuild was called without a build function.
	ErrNilBuild = errors.New("cache: build func is nil")
)
