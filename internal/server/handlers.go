package server

import (
	"net/http"

	"cvoptimizer/internal/types"
)

func (s *Server) rootHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, types.MessageResponse{Message: "CV Optimizer API is running!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy"})
}

// statsHandler reports rate limiting and circuit breaker state
func (s *Server) statsHandler(w http.ResponseWriter, _ *http.Request) {
	response := types.StatsResponse{
		Service: s.AppConfig.Observability.ServiceName,
		Version: s.Version,
		Server: map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"max_upload_size_bytes":  s.MaxUploadSize,
			"auth_enabled":           len(s.APIKeys) > 0,
		},
		RateLimiting: map[string]any{"enabled": false},
	}

	if s.RateLimiter != nil {
		response.RateLimiting = s.RateLimiter.GetStats()
		response.RateLimiting["by_ip"] = s.RateLimit.ByIP
		response.RateLimiting["by_api_key"] = s.RateLimit.ByAPIKey
	}
	if s.optimizer != nil {
		response.Optimizer = s.optimizer.Stats()
	}

	s.writeJSON(w, http.StatusOK, response)
}
