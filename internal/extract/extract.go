// Package extract reads the plain text of uploaded CV documents.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cvoptimizer/internal/errors"
)

// SupportedExtensions are the document suffixes FromFile understands.
var SupportedExtensions = []string{".pdf", ".docx", ".doc"}

// IsSupported reports whether path has a document suffix FromFile can read.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// FromFile extracts the text of a PDF or Word document. Failures are
// returned as validation or io AppErrors with user-facing Swedish messages.
func FromFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errors.NewValidationError(errors.ErrCodeFileNotFound,
			fmt.Sprintf("Filen %s finns inte", path), err)
	}

	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".pdf":
		text, err := readPDF(path)
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Kunde inte läsa PDF: %v", err), err)
		}
		return text, nil
	case ".docx", ".doc":
		text, err := readDOCX(path)
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Kunde inte läsa Word-dokument: %v", err), err)
		}
		return text, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Filtypen %s stöds inte. Använd PDF eller DOCX", ext), nil)
	}
}
