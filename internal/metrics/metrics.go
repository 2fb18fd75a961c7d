package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdf_toolkit"

// Result labels
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
)

var (
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total operations by operation and result (success, partial or error kind)",
		},
		[]string{"op", "result"},
	)

	operationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of operations by operation",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	pagesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Pages written to delivered artifacts by operation",
		},
		[]string{"op"},
	)

	artifactBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Bytes of delivered artifacts by operation",
		},
		[]string{"op"},
	)

	registerOnce sync.Once
)

// Init registers collectors with the default registry. Repeated calls are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(operations, operationLatency, pagesWritten, artifactBytes)
	})
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

// ObserveOperation records the outcome and duration of one operation
func ObserveOperation(op, result string, dur time.Duration) {
	operations.WithLabelValues(op, result).Inc()
	operationLatency.WithLabelValues(op).Observe(dur.Seconds())
}

// AddOutput records pages and bytes handed to the delivery sink
func AddOutput(op string, pages, bytes int) {
	pagesWritten.WithLabelValues(op).Add(float64(pages))
	artifactBytes.WithLabelValues(op).Add(float64(bytes))
}
