package ai

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/keywords"
	"cvoptimizer/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Optimizer rewrites a CV against a job posting with one chat completion
type Optimizer struct {
	provider    Provider
	breaker     *CircuitBreaker
	temperature float32
	metrics     *observability.Manager
	logger      *errors.Logger

	mu      sync.RWMutex
	prompts Prompts
}

// NewOptimizer wires a provider with the breaker and prompts described by cfg.
// metrics may be nil.
func NewOptimizer(provider Provider, cfg config.LLMConfig, metrics *observability.Manager, logger *errors.Logger) *Optimizer {
	return &Optimizer{
		provider:    provider,
		breaker:     NewCircuitBreaker("llm-"+provider.Name(), cfg.CircuitBreaker, logger),
		temperature: cfg.Temperature,
		metrics:     metrics,
		logger:      logger,
		prompts:     DefaultPrompts(),
	}
}

// SetPrompts swaps the active prompts. Safe to call while optimizations run.
func (o *Optimizer) SetPrompts(p Prompts) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prompts = p
}

// Prompts returns the active prompts
func (o *Optimizer) Prompts() Prompts {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.prompts
}

// Optimize returns the model's rewritten CV verbatim. Any failure is
// reported as a single AI error; nothing is retried.
func (o *Optimizer) Optimize(ctx context.Context, cvText, jobText string) (string, error) {
	ctx, span := otel.Tracer("cvoptimizer.ai").Start(ctx, "ai.optimize")
	defer span.End()

	prompts := o.Prompts()
	allowed := keywords.Extract(cvText, keywords.AllowedVocabularyTopN)
	req := ChatRequest{
		System:      prompts.System,
		User:        BuildUserPrompt(prompts.User, allowed, jobText, cvText),
		Temperature: o.temperature,
	}

	span.SetAttributes(
		attribute.String("ai.provider", o.provider.Name()),
		attribute.Float64("ai.temperature", float64(o.temperature)),
		attribute.Int("input.cv_length", utf8.RuneCountInString(cvText)),
		attribute.Int("input.job_length", utf8.RuneCountInString(jobText)),
		attribute.Int("input.allowed_keywords", len(allowed)),
	)

	start := time.Now()
	resp, err := o.breaker.Execute(func() (*ChatResponse, error) {
		return o.provider.Complete(ctx, req)
	})
	elapsed := time.Since(start)

	var inputTokens, outputTokens int64
	if err == nil && resp.Usage != nil {
		inputTokens, outputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", inputTokens),
			attribute.Int64("ai.tokens.output", outputTokens),
			attribute.Int64("ai.tokens.total", resp.Usage.TotalTokens),
		)
	}
	o.metrics.RecordLLMCall(ctx, o.provider.Name(), elapsed, inputTokens, outputTokens, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		if appErr, ok := errors.AsAppError(err); ok {
			return "", appErr
		}
		return "", errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Kunde inte optimera CV", err).
			WithContext("provider", o.provider.Name())
	}

	o.logger.Info("CV optimized",
		"provider", o.provider.Name(),
		"model", resp.Model,
		"duration_ms", elapsed.Milliseconds(),
		"input_tokens", inputTokens,
		"output_tokens", outputTokens)

	return resp.Content, nil
}

// Stats reports the circuit breaker state
func (o *Optimizer) Stats() map[string]any {
	return map[string]any{
		"provider":        o.provider.Name(),
		"circuit_breaker": o.breaker.Stats(),
		"healthy":         o.breaker.IsHealthy(),
	}
}

// Close releases the provider
func (o *Optimizer) Close() error {
	return o.provider.Close()
}
