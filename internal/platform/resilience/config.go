package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig guards the transaction opener of the postgres unit of
// work. A disabled config yields a nil breaker and writes go straight to the
// database.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultDBCircuitBreakerConfig trips after five failed BEGINs and tries the
// database again after fifteen seconds.
func DefaultDBCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Validate reports the first out-of-range field, named after the env prefix
// it was read from.
func (c CircuitBreakerConfig) Validate(prefix string) error {
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return nil
}

// NewBreaker returns nil when the breaker is disabled.
func (c CircuitBreakerConfig) NewBreaker() *CircuitBreaker {
	if !c.Enabled {
		return nil
	}
	return NewCircuitBreaker(c.FailureThreshold, c.OpenTimeout, c.HalfOpenMaxReq)
}
