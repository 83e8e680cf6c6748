package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SwipesProcessed    prometheus.Counter
	MatchesWritten     prometheus.Counter
	DetectionDuration  prometheus.Histogram
	PushSent           prometheus.Counter
	PushFailed         prometheus.Counter
	PushSkipped        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
