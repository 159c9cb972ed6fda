package resilience

import "time"

// CircuitBreakerConfig is loaded per upstream (ROBOTEVENTS_CIRCUIT_*,
// FTCEVENTS_CIRCUIT_*). A disabled config yields a pass-through breaker.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// withDefaults fills non-positive limits from DefaultCircuitBreakerConfig and
// keeps Enabled as given.
func (cfg CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = positiveOr(cfg.FailureThreshold, defaults.FailureThreshold)
	cfg.HalfOpenMaxReq = positiveOr(cfg.HalfOpenMaxReq, defaults.HalfOpenMaxReq)
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	return cfg
}

func positiveOr(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
