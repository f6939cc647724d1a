package cli

import (
	"context"

	"cvoptimizer/internal/common"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/render"
	"cvoptimizer/internal/scrape"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a CV for a job posting",
	Long: `Send a CV and a job posting to the configured language model and write
the optimized CV, in Swedish and English, as text, JSON, DOCX or PDF.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var (
	optimizeSources common.InputSources
	optimizeConfig  common.CommandConfig
)

func init() {
	addInputFlags(optimizeCmd, &optimizeSources)
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: text, json, docx or pdf")

	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return render.NewRegistry().Formats(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	optimizer, err := newOptimizer(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer closeOptimizer(optimizer, logger)

	optimize := func(ctx context.Context, in common.Inputs) (string, error) {
		if common.IsCookieBanner(in.Job) {
			return "", errors.NewValidationError(errors.ErrCodeCookieText,
				"Jobbannonsen ser ut att vara cookie-text. Klistra in annonsen som text.", nil)
		}
		logger.Info("Starting CV optimization", "output_format", optimizeConfig.OutputFormat)
		return optimizer.Optimize(ctx, in.CV, in.Job)
	}

	outputHandler := common.NewOutputHandler(logger, render.NewRegistry())
	outputHandler.SetOutput(cmd.OutOrStdout())
	output := func(text string) error {
		return outputHandler.HandleOutput(text, optimizeConfig)
	}

	return common.RunCommand(ctx, logger, scrape.New(cfg.Scrape), optimizeSources, optimize, output)
}
