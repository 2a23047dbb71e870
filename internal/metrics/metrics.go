package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// PlanRuns counts planning runs by outcome: ok, unreachable, cached, error
	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_runs_total", Help: "Planning runs by status."},
		[]string{"status"},
	)
	// Sweeps records how many sweeps the hill climb needed per run
	Sweeps = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "optimizer_sweeps", Help: "Hill-climb sweeps per run.", Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55}},
	)
	// Improvements counts adopted swaps across all runs
	Improvements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "optimizer_improvements_total", Help: "Adopted improving swaps."},
	)
	// SolutionCost holds the total cost of the last reachable run
	SolutionCost = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "optimizer_solution_cost", Help: "Total cost of the last reachable plan."},
	)

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(PlanRuns)
		Registry.MustRegister(Sweeps)
		Registry.MustRegister(Improvements)
		Registry.MustRegister(SolutionCost)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// ObserveRun records the outcome of one optimizer run.
func ObserveRun(sweeps, improvements int, cost float64, reachable bool) {
	Sweeps.Observe(float64(sweeps))
	Improvements.Add(float64(improvements))
	if reachable {
		SolutionCost.Set(cost)
		PlanRuns.WithLabelValues("ok").Inc()
		return
	}
	PlanRuns.WithLabelValues("unreachable").Inc()
}
