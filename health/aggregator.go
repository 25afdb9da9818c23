package health

import (
	"context"
	"sync"
)

// Aggregator combines multiple health checkers into one composite check.
type Aggregator struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{checkers: make(map[string]Checker)}
}

// Register adds a health checker under the given name, replacing any
// previous checker with that name.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checkers[name] = checker
}

// CheckAll runs every registered checker and returns results by name.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, c := range a.checkers {
		checkers[name] = c
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	for name, c := range checkers {
		results[name] = c.Check(ctx)
	}
	return results
}

// OverallStatus reduces a result set to the worst observed status.
func (a *Aggregator) OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		if r.Status > overall {
			overall = r.Status
		}
	}
	return overall
}
