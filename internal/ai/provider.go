// Package ai asks a chat-completion model to rewrite a CV for a job posting.
package ai

import (
	"context"
	"fmt"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
)

// Provider sends a single chat completion to an LLM backend
type Provider interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string
	Close() error
}

// ChatRequest is one system plus one user message
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
}

// ChatResponse holds the first choice of a completion
type ChatResponse struct {
	Content string
	Model   string
	Usage   *TokenUsage
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// NewProvider creates the provider named by cfg.Provider
func NewProvider(ctx context.Context, cfg config.LLMConfig, logger *errors.Logger) (Provider, error) {
	logger.Debug("Initializing LLM provider",
		"provider", cfg.Provider,
		"base_url", cfg.BaseURL,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout)

	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg), nil
	case "gemini":
		provider, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
				"Failed to create AI provider", err)
		}
		return provider, nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}
}
