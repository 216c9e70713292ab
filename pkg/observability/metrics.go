package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for gateway requests
const (
	OutcomeApproved = "approved"
	OutcomeDeclined = "declined"
	OutcomeError    = "error"
)

// GatewayMetrics records one observation per gateway round trip
type GatewayMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	breakerState    *prometheus.GaugeVec
}

// NewGatewayMetrics registers the gateway collectors on reg.
// Pass prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	factory := promauto.With(reg)

	return &GatewayMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "securepay_requests_total",
			Help: "Total number of SecurePay XML API requests",
		}, []string{
			"action",        // purchase, authorization, capture, void, credit, recurring
			"outcome",       // approved, declined, error
			"response_code", // provider responseCode, empty on transport errors
		}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "securepay_request_duration_seconds",
			Help: "Duration of SecurePay XML API round trips in seconds",
			// Provider timeout defaults to 60s
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"action"}),

		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "securepay_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
	}
}

// ObserveRequest records a completed round trip. Safe on a nil receiver.
func (m *GatewayMetrics) ObserveRequest(action, outcome, responseCode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(action, outcome, responseCode).Inc()
	m.requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// SetBreakerState records the breaker state. Safe on a nil receiver.
func (m *GatewayMetrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}
