package common

import (
	"testing"

	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/render"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := render.NewRegistry().Formats()

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedMessage  string
	}{
		{
			name:             "valid format - text",
			format:           "text",
			supportedFormats: supported,
		},
		{
			name:             "valid format - docx",
			format:           "docx",
			supportedFormats: supported,
		},
		{
			name:             "valid format - pdf",
			format:           "pdf",
			supportedFormats: supported,
		},
		{
			name:             "invalid format - markdown",
			format:           "markdown",
			supportedFormats: supported,
			expectError:      true,
			expectedMessage:  "unsupported output format 'markdown'. Supported formats: [docx json pdf text]",
		},
		{
			name:             "case sensitive - PDF uppercase",
			format:           "PDF",
			supportedFormats: supported,
			expectError:      true,
			expectedMessage:  "unsupported output format 'PDF'. Supported formats: [docx json pdf text]",
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: []string{"text"},
			expectError:      true,
			expectedMessage:  "unsupported output format ''. Supported formats: [text]",
		},
		{
			name:             "empty supported formats - should allow all",
			format:           "xml",
			supportedFormats: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if !tt.expectError {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}

			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("Expected AppError, got %v", err)
			}
			if appErr.Type != errors.ErrorTypeValidation {
				t.Errorf("Expected validation error, got %s", appErr.Type)
			}
			if appErr.Message != tt.expectedMessage {
				t.Errorf("Expected message '%s', got '%s'", tt.expectedMessage, appErr.Message)
			}
		})
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := render.NewRegistry().Formats()

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("pdf", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
