package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records latency and outcomes for calls to the procurement
// backend.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream call metrics on the provided
// registerer. A nil registerer yields a no-op collector.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of procurement backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource", "status"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failures",
		Help: "Procurement backend requests that did not complete.",
	}, []string{"method", "resource"})
	reg.MustRegister(duration, failure)
	return &UpstreamMetrics{
		duration: duration,
		failure:  failure,
	}
}

// ObserveRequest records one completed upstream round trip.
func (u *UpstreamMetrics) ObserveRequest(method, resource string, status int, duration time.Duration) {
	if u == nil || u.duration == nil {
		return
	}
	u.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(resource), strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for requests that never produced
// an HTTP response.
func (u *UpstreamMetrics) IncFailure(method, resource string) {
	if u == nil || u.failure == nil {
		return
	}
	u.failure.WithLabelValues(normalizeLabel(method), normalizeLabel(resource)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
