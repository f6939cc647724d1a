package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// APIPrefix is the path prefix of the CV endpoints
const APIPrefix = "/api/cv"

// Handler builds the full HTTP handler: router, per-route limits and the
// request ID, CORS and tracing middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeErrorBody(w, http.StatusNotFound, "Not Found", "NOT_FOUND")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeErrorBody(w, http.StatusMethodNotAllowed, "Method Not Allowed", "METHOD_NOT_ALLOWED")
	})

	r.HandleFunc("/", s.rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.statsHandler).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.Use(s.rateLimitMiddleware, s.authMiddleware)

	api.HandleFunc("/upload", bodyLimit(s.MaxUploadSize, s.uploadHandler)).Methods(http.MethodPost)
	api.HandleFunc("/job-posting", bodyLimit(s.MaxRequestSize, s.submitJobPostingHandler)).Methods(http.MethodPost)
	api.HandleFunc("/job-posting", s.getJobPostingHandler).Methods(http.MethodGet)
	api.HandleFunc("/job-posting-raw", bodyLimit(s.MaxRequestSize, s.submitJobPostingRawHandler)).Methods(http.MethodPost)
	api.HandleFunc("/master-cv-raw", bodyLimit(s.MaxRequestSize, s.submitMasterCVRawHandler)).Methods(http.MethodPost)
	api.HandleFunc("/master-cv", s.getMasterCVHandler).Methods(http.MethodGet)
	api.HandleFunc("/keywords", bodyLimit(s.MaxRequestSize, s.keywordsHandler)).Methods(http.MethodPost)
	api.HandleFunc("/optimize", bodyLimit(s.MaxRequestSize, s.optimizeHandler("json"))).Methods(http.MethodPost)
	api.HandleFunc("/optimize-docx", bodyLimit(s.MaxRequestSize, s.optimizeHandler("docx"))).Methods(http.MethodPost)
	api.HandleFunc("/optimize-pdf", bodyLimit(s.MaxRequestSize, s.optimizeHandler("pdf"))).Methods(http.MethodPost)

	var handler http.Handler = r
	handler = s.metrics.HTTPMiddleware()(handler)
	handler = s.corsMiddleware(handler)
	return requestIDMiddleware(handler)
}
