// Package health exposes probe endpoints for the support layer.
//
// It provides a small Checker framework, a cache capacity checker, and
// HTTP handlers for liveness and readiness probes. The embedding
// application registers its own checkers (database ping, upstream API)
// next to the cache checker.
package health
