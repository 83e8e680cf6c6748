package metrics

import "context"

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSwipesProcessed()
	IncMatchesWritten()
	ObserveDetectionDuration(duration float64)
	IncPushSent()
	IncPushFailed()
	IncPushSkipped()
	SetStartupTime(duration float64)
}

// MetricsStore persists simple named counters next to the application data,
// so they survive restarts and can be read back through /stats.
type MetricsStore interface {
	// Increment adds one to key, creating it at one.
	Increment(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]int, error)
}
