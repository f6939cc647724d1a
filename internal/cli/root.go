package cli

import (
	"context"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/spf13/cobra"
)

type contextKey int

const (
	configKey contextKey = iota
	loggerKey
)

var rootCmd = &cobra.Command{
	Use:   "cvoptimizer",
	Short: "Tailor a CV to a job posting",
	Long: `cvoptimizer compares the keywords of a CV and a job posting and asks a
language model for a rewritten, ATS-friendly CV in Swedish and English.
It runs as an HTTP API (serve) or directly on local files.`,
	SilenceUsage: true,
}

// Execute runs the command named on the command line. Subcommands read cfg
// and logger back from their context.
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context")
}

func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(versionCmd)
}
