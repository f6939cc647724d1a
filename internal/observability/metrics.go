package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the custom instruments
type Metrics struct {
	LLMRequests   metric.Int64Counter
	LLMDuration   metric.Float64Histogram
	LLMTokens     metric.Int64Counter
	Uploads       metric.Int64Counter
	Optimizations metric.Int64Counter
	Scrapes       metric.Int64Counter
	ContentSize   metric.Int64Histogram
	RateLimitHits metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.LLMRequests, "cvoptimizer_llm_requests_total", "Total number of chat completion requests"},
		{&m.LLMTokens, "cvoptimizer_llm_tokens_total", "Tokens reported by the LLM (input, output)"},
		{&m.Uploads, "cvoptimizer_uploads_total", "Total number of CV uploads"},
		{&m.Optimizations, "cvoptimizer_optimizations_total", "Total number of CV optimizations"},
		{&m.Scrapes, "cvoptimizer_scrapes_total", "Total number of job posting fetches"},
		{&m.RateLimitHits, "cvoptimizer_rate_limit_hits_total", "Total number of rate limit hits"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
	}

	m.LLMDuration, err = meter.Float64Histogram(
		"cvoptimizer_llm_request_duration_seconds",
		metric.WithDescription("Time spent waiting for chat completions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM duration metric: %w", err)
	}

	m.ContentSize, err = meter.Int64Histogram(
		"cvoptimizer_content_size_chars",
		metric.WithDescription("Size of stored and generated texts in characters"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content size metric: %w", err)
	}

	return &m, nil
}

func (m *Manager) instruments() *Metrics {
	if !m.Enabled() {
		return nil
	}
	return m.metrics
}

// RecordLLMCall records one chat completion attempt and its token usage
func (m *Manager) RecordLLMCall(ctx context.Context, provider string, elapsed time.Duration, inputTokens, outputTokens int64, err error) {
	metrics := m.instruments()
	if metrics == nil || !m.settings.Custom.LLM.Enabled {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.Bool("success", err == nil),
	)
	metrics.LLMRequests.Add(ctx, 1, attrs)

	if m.settings.Custom.LLM.TrackDuration {
		metrics.LLMDuration.Record(ctx, elapsed.Seconds(), attrs)
	}

	if m.settings.Custom.LLM.TrackTokenUsage && err == nil {
		metrics.LLMTokens.Add(ctx, inputTokens, metric.WithAttributes(
			attribute.String("provider", provider), attribute.String("token_type", "input")))
		metrics.LLMTokens.Add(ctx, outputTokens, metric.WithAttributes(
			attribute.String("provider", provider), attribute.String("token_type", "output")))
	}
}

// RecordUpload counts a CV upload
func (m *Manager) RecordUpload(ctx context.Context, extension string, success bool) {
	m.addBusiness(ctx, func(metrics *Metrics) metric.Int64Counter { return metrics.Uploads },
		attribute.String("extension", extension), attribute.Bool("success", success))
}

// RecordOptimization counts an optimization by output format
func (m *Manager) RecordOptimization(ctx context.Context, format string, success bool) {
	m.addBusiness(ctx, func(metrics *Metrics) metric.Int64Counter { return metrics.Optimizations },
		attribute.String("format", format), attribute.Bool("success", success))
}

// RecordScrape counts a job posting fetch
func (m *Manager) RecordScrape(ctx context.Context, success bool) {
	m.addBusiness(ctx, func(metrics *Metrics) metric.Int64Counter { return metrics.Scrapes },
		attribute.Bool("success", success))
}

func (m *Manager) addBusiness(ctx context.Context, pick func(*Metrics) metric.Int64Counter, attrs ...attribute.KeyValue) {
	metrics := m.instruments()
	if metrics == nil || !m.settings.Custom.Business.Enabled {
		return
	}
	pick(metrics).Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordContentSize records the character count of a stored or generated text
func (m *Manager) RecordContentSize(ctx context.Context, kind string, chars int) {
	metrics := m.instruments()
	if metrics == nil || !m.settings.Custom.Business.Enabled || !m.settings.Custom.Business.TrackContentSizes {
		return
	}
	metrics.ContentSize.Record(ctx, int64(chars), metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRateLimitHit counts a rejected request
func (m *Manager) RecordRateLimitHit(ctx context.Context, limitType string) {
	metrics := m.instruments()
	if metrics == nil || !m.settings.Custom.Infrastructure.Enabled || !m.settings.Custom.Infrastructure.TrackRateLimits {
		return
	}
	metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limit_type", limitType)))
}
