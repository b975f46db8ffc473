package api

import (
	"net/http"
	"vehicle-proximity-service/internal/api/handlers"
	"vehicle-proximity-service/internal/domain"
	"vehicle-proximity-service/internal/platform/obs"
	"vehicle-proximity-service/internal/ports"
	"vehicle-proximity-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps are the collaborators the HTTP layer needs. Metrics, Gatherer and
// Limiter are optional.
type Deps struct {
	Index    *domain.VehicleIndex
	Points   ports.ReferencePointRepository
	Search   services.SearchOptions
	Metrics  *obs.Metrics
	Gatherer prometheus.Gatherer
	Limiter  *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	pointsHandler := &handlers.PointsHandler{Repo: d.Points}
	nearestHandler := &handlers.NearestHandler{
		Index:   d.Index,
		Points:  d.Points,
		Search:  d.Search,
		Metrics: d.Metrics,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/points", pointsHandler.List)
	mux.Handle("/nearest", rateLimitMiddleware(d.Limiter, d.Metrics, http.HandlerFunc(nearestHandler.Find)))
	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
