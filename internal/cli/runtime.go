package cli

import (
	"context"
	"fmt"

	"cvoptimizer/internal/ai"
	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/observability"
)

// newOptimizer builds the configured LLM provider and wraps it with the
// prompt set loaded from the override files, if any.
func newOptimizer(ctx context.Context, cfg *config.Config, logger *errors.Logger, metrics *observability.Manager) (*ai.Optimizer, error) {
	provider, err := ai.NewProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	loaded, err := cfg.LoadPrompts()
	if err != nil {
		_ = provider.Close()
		return nil, err
	}

	optimizer := ai.NewOptimizer(provider, cfg.LLM, metrics, logger)
	optimizer.SetPrompts(ai.PromptsFrom(loaded))
	return optimizer, nil
}

func closeOptimizer(optimizer *ai.Optimizer, logger *errors.Logger) {
	if err := optimizer.Close(); err != nil {
		logger.Warn("Failed to close LLM provider", "error", err)
	}
}
