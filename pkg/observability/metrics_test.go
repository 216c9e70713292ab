package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGatewayMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGatewayMetrics(reg)

	m.ObserveRequest("purchase", OutcomeApproved, "00", 120*time.Millisecond)
	m.ObserveRequest("purchase", OutcomeApproved, "00", 80*time.Millisecond)
	m.ObserveRequest("purchase", OutcomeDeclined, "54", 90*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("purchase", OutcomeApproved, "00")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("purchase", OutcomeDeclined, "54")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestGatewayMetrics_BreakerState(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGatewayMetrics(reg)

	m.SetBreakerState("securepay", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakerState.WithLabelValues("securepay")))
}

func TestGatewayMetrics_NilReceiver(t *testing.T) {
	var m *GatewayMetrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("void", OutcomeError, "", time.Second)
		m.SetBreakerState("securepay", 0)
	})
}
