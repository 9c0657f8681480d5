package resilience

import (
	"context"
	"errors"
	"time"
)

// CircuitBreakerConfig configures the breaker guarding a spreadsheet backend.
type CircuitBreakerConfig struct {
	Name             string
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// IsFailure decides which errors count against the breaker. Errors it
	// rejects (bad ranges, missing sheets) are caller mistakes, not outages.
	IsFailure func(error) bool
	// OnStateChange is called outside the breaker lock after every transition.
	OnStateChange func(name string, from, to CircuitState)
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "sheets",
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
		IsFailure:        countsAsFailure,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = defaults.IsFailure
	}
	return cfg
}

// countsAsFailure treats everything but a caller cancellation as an outage.
func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}
