package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/types"
)

// writeJSON writes v as the JSON response body
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("Failed to encode response", "error", err)
	}
}

// writeErrorBody writes the standard error body
func (s *Server) writeErrorBody(w http.ResponseWriter, status int, detail, code string) {
	s.writeJSON(w, status, types.ErrorResponse{Detail: detail, Error: code})
}

// writeError maps err to a status code and error body. Server-side
// failures are logged with their full cause.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)

	detail, code := err.Error(), "INTERNAL_ERROR"
	if appErr, ok := errors.AsAppError(err); ok {
		detail, code = appErr.Detail(), appErr.Code
	}

	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestIDFrom(r.Context()))
	} else {
		s.Logger.Debug("Request rejected",
			"method", r.Method, "path", r.URL.Path, "status", status, "code", code)
	}

	s.writeErrorBody(w, status, detail, code)
}

// parseJSONRequest decodes the request body into v. An empty body leaves v
// at its zero value.
func parseJSONRequest(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Ogiltig JSON: %v", err), err)
	}
	return nil
}

// readBody reads the whole request body as text
func readBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("Förfrågan är för stor (max %d byte)", maxBytesErr.Limit), err)
		}
		return "", errors.NewIOError(errors.ErrCodeInvalidRequest, "Kunde inte läsa förfrågan", err)
	}
	return string(body), nil
}
