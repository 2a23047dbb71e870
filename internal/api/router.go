package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"truck-route-optimizer/internal/api/handlers"
	"truck-route-optimizer/internal/metrics"
	"truck-route-optimizer/internal/ports"
)

type RouterDeps struct {
	Runs             ports.RunRepository
	Cache            ports.PlanCache
	DefaultSeed      int64
	DefaultMaxSweeps int
	PlanTimeout      time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Runs:             deps.Runs,
		Cache:            deps.Cache,
		DefaultSeed:      deps.DefaultSeed,
		DefaultMaxSweeps: deps.DefaultMaxSweeps,
		Timeout:          deps.PlanTimeout,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/{id}", planHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
