package cli

import (
	"context"
	"fmt"
	"time"

	"cvoptimizer/internal/ai"
	"cvoptimizer/internal/config"
	"cvoptimizer/internal/observability"
	"cvoptimizer/internal/render"
	"cvoptimizer/internal/scrape"
	"cvoptimizer/internal/server"
	"cvoptimizer/internal/storage"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API used by the CV optimizer frontend.

Endpoints live under /api/cv: upload, master-cv, master-cv-raw, job-posting,
job-posting-raw, keywords, optimize, optimize-docx and optimize-pdf.
GET /health and GET /stats report service state.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
}

// applyServeFlags overrides the server address with flags given on the command line
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	for flag, target := range map[string]*string{
		"port": &cfg.Server.Port,
		"host": &cfg.Server.Host,
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return err
		}
		*target = value
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}

	om, err := observability.NewManager(observability.SettingsFrom(cfg, Version))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	optimizer, err := newOptimizer(ctx, cfg, logger, om)
	if err != nil {
		return err
	}
	defer closeOptimizer(optimizer, logger)

	watcher, err := ai.WatchPrompts(cfg, optimizer, logger)
	if err != nil {
		return fmt.Errorf("failed to watch prompt files: %w", err)
	}
	if watcher != nil {
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.Warn("Failed to stop prompt watcher", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, Version, server.Deps{
		Store:     store,
		Optimizer: optimizer,
		Fetcher:   scrape.New(cfg.Scrape),
		Registry:  render.NewRegistry(),
		Metrics:   om,
	}, logger)

	return srv.Start(ctx)
}
