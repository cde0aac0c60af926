package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghcbctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ghcbctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	msrExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghcbctl",
			Subsystem: "msr",
			Name:      "exchanges_total",
			Help:      "MSR protocol exchanges by request kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	msrExchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ghcbctl",
			Subsystem: "msr",
			Name:      "exchange_duration_seconds",
			Help:      "MSR protocol exchange duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind", "outcome"},
	)
	msrDecodeRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghcbctl",
			Subsystem: "msr",
			Name:      "decode_rejections_total",
			Help:      "Raw values rejected by response validation.",
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, msrExchanges, msrExchangeDuration, msrDecodeRejections)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordExchange(kind, outcome string, duration time.Duration) {
	RegisterMetrics()
	msrExchanges.WithLabelValues(kind, outcome).Inc()
	msrExchangeDuration.WithLabelValues(kind, outcome).Observe(duration.Seconds())
	if outcome == "rejected" {
		msrDecodeRejections.WithLabelValues(kind).Inc()
	}
}

// RecordDecodeRejection counts a validation failure outside a driver
// exchange, such as an inspection endpoint rejecting a raw value.
func RecordDecodeRejection(kind string) {
	RegisterMetrics()
	msrDecodeRejections.WithLabelValues(kind).Inc()
}
