package http

import (
	"net/http"

	"github.com/mauv0809/kindred/internal/http/handlers"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/router"
)

func NewServer(store handlers.MatchReader, counters metrics.MetricsStore, metricsHandler http.Handler, events router.EventRouter) *Server {
	server := &Server{
		Store:          store,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Events:         events,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(handlers.StatsHandler(s.Counters, s.Store), paramsMiddleware))
	s.Router.Handle("GET /users/{id}/matches", Chain(handlers.ListUserMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /events", Chain(handlers.EventsHandler(s.Events), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
