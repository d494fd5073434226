package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_gateway_"

// Surface constants for labelling where a request entered
const (
	SurfaceHTTP = "http"
	SurfaceMCP  = "mcp"
)

var (
	// OperationRequestsTotal counts operation invocations per surface
	// Cardinality: ~24 (4 operations x 2 surfaces x 3 outcomes)
	OperationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "operation_requests_total",
			Help: "Total number of operation invocations",
		},
		[]string{"surface", "operation", "outcome"},
	)

	// UpstreamRequestsTotal counts HTTP requests to the CoinGecko API
	// Cardinality: ~2 (success, error)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to the CoinGecko API",
		},
		[]string{"status"},
	)

	// OperationDurationHistogram tracks operation latency per surface
	OperationDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "operation_duration_seconds",
			Help: "Time taken to complete an operation end to end",
		},
		[]string{"surface", "operation"},
	)

	// PaymentChecksTotal counts payment gate decisions
	// Cardinality: 3 (settled, required, failed)
	PaymentChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "payment_checks_total",
			Help: "Total number of x402 payment gate decisions",
		},
		[]string{"result"},
	)
)

// Writer records metrics for one surface
type Writer struct {
	surface string
}

// NewWriter creates a metrics writer for the given surface
func NewWriter(surface string) *Writer {
	return &Writer{surface: surface}
}

// RecordOperation records one operation invocation and its duration
func (w *Writer) RecordOperation(operation, outcome string, start time.Time) {
	OperationRequestsTotal.WithLabelValues(w.surface, operation, outcome).Inc()
	OperationDurationHistogram.WithLabelValues(w.surface, operation).Observe(time.Since(start).Seconds())
}

// OnRequest implements coingecko.StatusHandler so the upstream client can
// report per-request outcomes
func (w *Writer) OnRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
}

// RecordPaymentCheck records one payment gate decision
func RecordPaymentCheck(result string) {
	PaymentChecksTotal.WithLabelValues(result).Inc()
}
