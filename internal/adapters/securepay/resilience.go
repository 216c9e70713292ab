package securepay

import (
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// BreakerConfig configures the optional circuit breaker around the HTTP call.
// The breaker never retries; it only fails fast while the provider is unreachable.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive transport failures before opening
	MaxFailures uint32
	// Timeout is how long the circuit stays open before a trial request
	Timeout time.Duration
	// MaxRequestsHalfOpen is the number of trial requests allowed while half-open
	MaxRequestsHalfOpen uint32
}

// DefaultBreakerConfig returns sensible defaults
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:         5,
		Timeout:             30 * time.Second,
		MaxRequestsHalfOpen: 1,
	}
}

// newBreaker builds a gobreaker counting only transport errors. Declines are successful
// round trips and never trip it.
func newBreaker(cfg BreakerConfig, onChange func(from, to gobreaker.State)) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "securepay",
		MaxRequests: cfg.MaxRequestsHalfOpen,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			if onChange != nil {
				onChange(from, to)
			}
		},
	})
}

// newLimiter builds an outbound token bucket; rps <= 0 disables limiting
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
