package http

import (
	"net/http"

	"github.com/mauv0809/kindred/internal/http/handlers"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/router"
)

type Server struct {
	Store          handlers.MatchReader
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Events         router.EventRouter
	Router         *http.ServeMux
}
