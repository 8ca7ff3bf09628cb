package utils

import (
	"sync"
	"time"
)

// MetricsCollector tracks request counts and per-route latencies across the
// server. It is surfaced through the health endpoint.
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps route name to list of latencies in nanoseconds
	routeTimes map[string][]int64

	systemStartTime time.Time
}

// MetricsSnapshot is the read-only view returned to callers.
type MetricsSnapshot struct {
	Requests uint64        `json:"requests"`
	Errors   uint64        `json:"errors"`
	Uptime   time.Duration `json:"uptime"`
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		routeTimes:      make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddRouteLatency(route string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.routeTimes[route] = append(mc.routeTimes[route], duration.Nanoseconds())
}

// Snapshot returns current counters and uptime.
func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return MetricsSnapshot{
		Requests: mc.requestCount,
		Errors:   mc.errorCount,
		Uptime:   time.Since(mc.systemStartTime),
	}
}
