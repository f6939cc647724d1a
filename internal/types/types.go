// Package types defines the request and response bodies of the HTTP API.
package types

import (
	"errors"

	"cvoptimizer/internal/keywords"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Messages returned when a job posting request names no source or both
const (
	MsgJobPostingMissingSource = "Antingen text eller url måste anges"
	MsgJobPostingBothSources   = "Ange endast text ELLER url, inte båda"
)

// JobPostingInput is the body of POST /api/cv/job-posting. Exactly one of
// Text and URL must be set.
type JobPostingInput struct {
	Text string `json:"text" validate:"required_without=URL,excluded_with=URL"`
	URL  string `json:"url"`
}

// Validate checks the request and returns the user-facing message of the
// first failed rule.
func (r *JobPostingInput) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		switch validationErrors[0].Tag() {
		case "required_without":
			return errors.New(MsgJobPostingMissingSource)
		case "excluded_with":
			return errors.New(MsgJobPostingBothSources)
		}
	}
	return err
}

// KeywordRequest is the body of POST /api/cv/keywords. Missing texts fall
// back to the stored slots.
type KeywordRequest struct {
	JobText string `json:"job_text"`
	CVText  string `json:"cv_text"`
	TopN    *int   `json:"top_n"`
}

// TopNOrDefault returns TopN, or keywords.DefaultTopN when it was omitted
func (r *KeywordRequest) TopNOrDefault() int {
	if r.TopN == nil {
		return keywords.DefaultTopN
	}
	return *r.TopN
}

// OptimizeRequest is the body of the /api/cv/optimize endpoints
type OptimizeRequest struct {
	JobText string `json:"job_text"`
	CVText  string `json:"cv_text"`
}

// MessageResponse is returned by GET /
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// UploadResponse is returned after a CV document was uploaded and stored
type UploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Length   int    `json:"length"`
	SavedTo  string `json:"saved_to"`
}

// JobPostingResponse is returned after a job posting was stored
type JobPostingResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Length  int    `json:"length"`
	SavedTo string `json:"saved_to"`
}

// SaveResponse is returned by the raw text endpoints
type SaveResponse struct {
	Success bool   `json:"success"`
	Length  int    `json:"length"`
	SavedTo string `json:"saved_to"`
}

// TextResponse returns a stored text
type TextResponse struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// KeywordResponse is the keyword comparison
type KeywordResponse = keywords.Comparison

// OptimizeResponse carries the optimized CV
type OptimizeResponse struct {
	OptimizedCV string `json:"optimized_cv"`
	Length      int    `json:"length"`
}

// ErrorResponse is the body of every error reply. Detail is the message
// shown to the user, Error the machine-readable code.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error,omitempty"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	Service      string         `json:"service"`
	Version      string         `json:"version"`
	Server       map[string]any `json:"server"`
	RateLimiting map[string]any `json:"rate_limiting"`
	Optimizer    map[string]any `json:"optimizer,omitempty"`
}
