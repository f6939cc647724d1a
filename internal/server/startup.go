package server

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
)

// Start serves HTTP until ctx is cancelled, SIGINT/SIGTERM arrives or the
// listener fails, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	httpServer := s.setupHTTPServer()

	sweeper, err := s.startUploadSweeper()
	if err != nil {
		return err
	}
	if sweeper != nil {
		defer sweeper.Stop()
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(ctx, httpServer)
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer() *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.Host, s.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
	if s.tlsEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return server
}

func (s *Server) tlsEnabled() bool {
	cfg := s.AppConfig.Server
	return cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
}

// startUploadSweeper schedules removal of stale upload temp files. It
// returns nil when no schedule is configured.
func (s *Server) startUploadSweeper() (*cron.Cron, error) {
	uploads := s.AppConfig.Uploads
	if uploads.SweepSchedule == "" {
		return nil, nil
	}

	dir := s.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	c := cron.New()
	_, err := c.AddFunc(uploads.SweepSchedule, func() {
		removed, err := sweepUploads(dir, uploads.MaxAge, time.Now())
		if err != nil {
			s.Logger.LogError(err, "Upload temp sweep failed", "dir", dir)
			return
		}
		if removed > 0 {
			s.Logger.Info("Removed stale upload temp files", "count", removed, "dir", dir)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid uploads.sweepSchedule %q: %w", uploads.SweepSchedule, err)
	}

	c.Start()
	s.Logger.Debug("Upload temp sweeper scheduled", "schedule", uploads.SweepSchedule, "max_age", uploads.MaxAge)
	return c, nil
}

// startWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func (s *Server) startWithGracefulShutdown(ctx context.Context, server *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS(s.AppConfig.Server.TLSCertFile, s.AppConfig.Server.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		s.cleanupRateLimiter()
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())
	case <-ctx.Done():
		s.Logger.Info("Context cancelled, starting graceful shutdown")
	}

	return s.performGracefulShutdown(server)
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.cleanupRateLimiter()

	s.Logger.Info("Shutting down HTTP server...", "drain_timeout", timeout)
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Debug("Rate limiter cleaned up")
	}
}
