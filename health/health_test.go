package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCache struct {
	entries, capacity int
}

func (c fakeCache) Len() int { return c.entries }
func (c fakeCache) Cap() int { return c.capacity }

func TestCacheChecker_Healthy(t *testing.T) {
	checker := NewCacheChecker(fakeCache{entries: 5, capacity: 50}, CacheCheckerConfig{})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("status = %v, want healthy", result.Status)
	}
	if result.Details["entries"] != 5 || result.Details["capacity"] != 50 {
		t.Errorf("details = %v, want entries/capacity", result.Details)
	}
}

func TestCacheChecker_DegradedNearCapacity(t *testing.T) {
	checker := NewCacheChecker(fakeCache{entries: 48, capacity: 50}, CacheCheckerConfig{})

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("status = %v, want degraded at 96%% fill", result.Status)
	}
}

func TestCacheChecker_CustomThreshold(t *testing.T) {
	checker := NewCacheChecker(fakeCache{entries: 30, capacity: 50}, CacheCheckerConfig{WarningThreshold: 0.5})

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("status = %v, want degraded above custom threshold", result.Status)
	}
}

func TestCacheChecker_CancelledContext(t *testing.T) {
	checker := NewCacheChecker(fakeCache{}, CacheCheckerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := checker.Check(ctx)
	if result.Status != StatusUnhealthy {
		t.Errorf("status = %v, want unhealthy on cancelled context", result.Status)
	}
}

func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator()
	agg.Register("ok", NewCheckerFunc("ok", func(context.Context) Result {
		return Healthy("fine")
	}))
	agg.Register("warn", NewCheckerFunc("warn", func(context.Context) Result {
		return Degraded("nearly full")
	}))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if status := agg.OverallStatus(results); status != StatusDegraded {
		t.Errorf("overall = %v, want degraded (worst wins)", status)
	}

	agg.Register("down", NewCheckerFunc("down", func(context.Context) Result {
		return Unhealthy("broken", errors.New("boom"))
	}))
	if status := agg.OverallStatus(agg.CheckAll(context.Background())); status != StatusUnhealthy {
		t.Errorf("overall = %v, want unhealthy", status)
	}
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Register("cache", NewCacheChecker(fakeCache{entries: 1, capacity: 50}, CacheCheckerConfig{}))

	rec := httptest.NewRecorder()
	ReadinessHandler(agg)(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	agg.Register("down", NewCheckerFunc("down", func(context.Context) Result {
		return Unhealthy("broken", errors.New("boom"))
	}))

	rec = httptest.NewRecorder()
	ReadinessHandler(agg)(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Body.String() != "UNHEALTHY" {
		t.Errorf("body = %q, want UNHEALTHY", rec.Body.String())
	}
}

func TestDetailedHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Register("engine_cache", NewCacheChecker(fakeCache{entries: 49, capacity: 50}, CacheCheckerConfig{}))

	rec := httptest.NewRecorder()
	DetailedHandler(agg)(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (degraded is still serving)", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	check, ok := resp.Checks["engine_cache"]
	if !ok {
		t.Fatal("response missing engine_cache check")
	}
	if check.Status != "degraded" {
		t.Errorf("check status = %q, want degraded", check.Status)
	}
}
