package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultDBCircuitBreakerConfig().Validate("DB"))

	tests := []struct {
		name   string
		mutate func(*CircuitBreakerConfig)
		want   string
	}{
		{name: "failure threshold", mutate: func(c *CircuitBreakerConfig) { c.FailureThreshold = 0 }, want: "DB_CIRCUIT_FAILURE_COUNT must be >= 1"},
		{name: "open timeout", mutate: func(c *CircuitBreakerConfig) { c.OpenTimeout = 0 }, want: "DB_CIRCUIT_OPEN_TIMEOUT must be > 0"},
		{name: "half open", mutate: func(c *CircuitBreakerConfig) { c.HalfOpenMaxReq = -1 }, want: "DB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDBCircuitBreakerConfig()
			tt.mutate(&cfg)
			assert.EqualError(t, cfg.Validate("DB"), tt.want)
		})
	}
}

func TestCircuitBreakerConfig_NewBreaker(t *testing.T) {
	cfg := DefaultDBCircuitBreakerConfig()
	cfg.FailureThreshold = 1
	cfg.OpenTimeout = time.Minute

	b := cfg.NewBreaker()
	require.NotNil(t, b)
	b.RecordFailure()
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	cfg.Enabled = false
	assert.Nil(t, cfg.NewBreaker())
}
