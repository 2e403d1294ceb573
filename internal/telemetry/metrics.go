// Package telemetry exposes the engine's Prometheus metrics.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BatchesPlanned  = prometheus.NewCounter(prometheus.CounterOpts{Name: "batches_planned_total", Help: "Job cards created by the batch planner"})
	StepsCompleted  = prometheus.NewCounter(prometheus.CounterOpts{Name: "steps_completed_total", Help: "Execution steps completed"})
	PiecesRejected  = prometheus.NewCounter(prometheus.CounterOpts{Name: "pieces_rejected_total", Help: "Pieces rejected across completed steps"})
	OpenJobsClaimed = prometheus.NewCounter(prometheus.CounterOpts{Name: "open_jobs_claimed_total", Help: "Open job steps claimed by employees"})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDuration,
			BatchesPlanned,
			StepsCompleted,
			PiecesRejected,
			OpenJobsClaimed,
		)
	})
	return promhttp.Handler()
}
