package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SwipesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindred_swipes_processed_total",
			Help: "The total number of swipe events handled by the match detector.",
		}),
		MatchesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindred_matches_written_total",
			Help: "The total number of match upserts, including idempotent rewrites.",
		}),
		DetectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kindred_match_detection_duration_seconds",
			Help:    "The duration of individual swipe handling.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PushSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindred_push_notifications_sent_total",
			Help: "The total number of push notifications accepted by the provider.",
		}),
		PushFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindred_push_notifications_failed_total",
			Help: "The total number of push notifications the provider rejected.",
		}),
		PushSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindred_push_notifications_skipped_total",
			Help: "The total number of messages that produced no push (no address or duplicate).",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kindred_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SwipesProcessed,
		s.MatchesWritten,
		s.DetectionDuration,
		s.PushSent,
		s.PushFailed,
		s.PushSkipped,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSwipesProcessed() {
	s.SwipesProcessed.Inc()
}

func (s *Service) IncMatchesWritten() {
	s.MatchesWritten.Inc()
}

func (s *Service) ObserveDetectionDuration(duration float64) {
	s.DetectionDuration.Observe(duration)
}

func (s *Service) IncPushSent() {
	s.PushSent.Inc()
}

func (s *Service) IncPushFailed() {
	s.PushFailed.Inc()
}

func (s *Service) IncPushSkipped() {
	s.PushSkipped.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
