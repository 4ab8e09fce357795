package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies for the API surface.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests processed, partitioned by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently being served.",
	})
	reg.MustRegister(requests, duration, inFlight)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
		inFlight: inFlight,
	}
}

// ObserveRequest records a completed request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(method, normalizeLabel(route), statusLabel(status)).Inc()
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// IncInFlight marks a request as started.
func (h *HTTPMetrics) IncInFlight() {
	if h == nil || h.inFlight == nil {
		return
	}
	h.inFlight.Inc()
}

// DecInFlight marks a request as finished.
func (h *HTTPMetrics) DecInFlight() {
	if h == nil || h.inFlight == nil {
		return
	}
	h.inFlight.Dec()
}

func normalizeLabel(route string) string {
	if route == "" {
		return "unknown"
	}
	return route
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
