package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharebox",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and route.",
		},
		[]string{"method", "route"},
	)

	httpErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharebox",
			Name:      "http_errors_total",
			Help:      "HTTP error responses by status code.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpErrors)
	})
}

// IncRequest increments the request counter for a route.
func IncRequest(method, route string) {
	httpRequests.WithLabelValues(method, route).Inc()
}

// IncError increments the error counter for a status code.
func IncError(status string) {
	httpErrors.WithLabelValues(status).Inc()
}
