package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /                         - Service banner")
	fmt.Println("  GET  /health                   - Health check")
	fmt.Println("  GET  /stats                    - Rate limiter and circuit breaker stats")
	fmt.Println("  POST " + APIPrefix + "/upload              - Upload master CV (PDF or DOCX)")
	fmt.Println("  POST " + APIPrefix + "/master-cv-raw       - Save master CV as text")
	fmt.Println("  GET  " + APIPrefix + "/master-cv           - Stored master CV")
	fmt.Println("  POST " + APIPrefix + "/job-posting         - Save job posting from text or URL")
	fmt.Println("  POST " + APIPrefix + "/job-posting-raw     - Save job posting as text")
	fmt.Println("  GET  " + APIPrefix + "/job-posting         - Stored job posting")
	fmt.Println("  POST " + APIPrefix + "/keywords            - Keyword comparison")
	fmt.Println("  POST " + APIPrefix + "/optimize            - Optimized CV as JSON")
	fmt.Println("  POST " + APIPrefix + "/optimize-docx       - Optimized CV as DOCX")
	fmt.Println("  POST " + APIPrefix + "/optimize-pdf        - Optimized CV as PDF")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to " + APIPrefix)
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
	}
	if s.MaxUploadSize > 0 {
		fmt.Printf("Upload size limit: %d bytes (%.1f MB)\n", s.MaxUploadSize, float64(s.MaxUploadSize)/(1024*1024))
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimiter == nil {
		fmt.Println("Rate limiting: DISABLED")
		return
	}
	fmt.Printf("Rate limiting: ENABLED (%d requests per %s, burst: %d)\n",
		s.RateLimit.RequestsPerMin, s.RateLimit.Window, s.RateLimit.BurstCapacity)
	if s.RateLimit.ByAPIKey {
		fmt.Println("  - Per API key rate limiting enabled")
	}
	if s.RateLimit.ByIP {
		fmt.Println("  - Per IP address rate limiting enabled")
	}
}
