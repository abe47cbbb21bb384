// Package metrics holds the Prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// HTTPDuration observes request handling latency per route.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockcast",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// PredictionsTotal counts prediction requests by outcome.
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockcast",
			Subsystem: "predictions",
			Name:      "total",
			Help:      "Prediction requests by outcome",
		},
		[]string{"outcome"},
	)
)

// Register registers the collectors exactly once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(HTTPDuration, PredictionsTotal)
	})
}
