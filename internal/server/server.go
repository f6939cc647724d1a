// Package server exposes the CV optimizer over HTTP.
package server

import (
	"context"
	"time"

	"cvoptimizer/internal/common"
	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/observability"
	"cvoptimizer/internal/render"
	"cvoptimizer/internal/storage"
)

// CVOptimizer rewrites a CV for a job posting
type CVOptimizer interface {
	Optimize(ctx context.Context, cvText, jobText string) (string, error)
	Stats() map[string]any
}

// Deps holds the collaborators the handlers call into
type Deps struct {
	Store     storage.Store
	Optimizer CVOptimizer
	Fetcher   common.JobFetcher
	Registry  *render.Registry
	Metrics   *observability.Manager
}

// Server holds configuration and dependencies for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config

	store     storage.Store
	optimizer CVOptimizer
	fetcher   common.JobFetcher
	registry  *render.Registry
	metrics   *observability.Manager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Request size limits
	MaxRequestSize int64
	MaxUploadSize  int64

	// Directory for upload temp files, os.TempDir() when empty
	TempDir string

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	Logger *errors.Logger
}

// NewServer creates a new Server from the application config
func NewServer(appCfg *config.Config, version string, deps Deps, logger *errors.Logger) *Server {
	cfg := appCfg.Server

	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Window, cfg.RateLimit.BurstCapacity, logger)
	}

	registry := deps.Registry
	if registry == nil {
		registry = render.NewRegistry()
	}

	return &Server{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Version:         version,
		AppConfig:       appCfg,
		store:           deps.Store,
		optimizer:       deps.Optimizer,
		fetcher:         deps.Fetcher,
		registry:        registry,
		metrics:         deps.Metrics,
		APIKeys:         apiKeyMap,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		MaxRequestSize:  cfg.MaxRequestSize,
		MaxUploadSize:   cfg.MaxUploadSize,
		TempDir:         appCfg.Uploads.TempDir,
		RateLimit:       &cfg.RateLimit,
		RateLimiter:     rateLimiter,
		Logger:          logger,
	}
}
