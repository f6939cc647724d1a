package ai

import (
	stderrors "errors"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker fails chat completions fast while the backend is unhealthy.
// A nil *CircuitBreaker passes every call straight through.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[*ChatResponse]
}

// NewCircuitBreaker returns nil when the breaker is disabled
func NewCircuitBreaker(name string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &CircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[*ChatResponse](settings),
	}
}

// Execute runs fn under the breaker. Rejections are reported as AI errors
// with code AI_CIRCUIT_OPEN.
func (cb *CircuitBreaker) Execute(fn func() (*ChatResponse, error)) (*ChatResponse, error) {
	if cb == nil || cb.cb == nil {
		return fn()
	}

	resp, err := cb.cb.Execute(fn)
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.NewAIError(errors.ErrCodeAICircuitOpen,
			"Språkmodellen är tillfälligt otillgänglig", err)
	}
	return resp, err
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() map[string]any {
	if cb == nil || cb.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    cb.cb.Name(),
		"state":   cb.cb.State().String(),
		"counts":  cb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (cb *CircuitBreaker) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true
	}
	return cb.cb.State() == gobreaker.StateClosed
}
