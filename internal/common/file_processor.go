package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/extract"
	"cvoptimizer/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ReadFile reads content from a file with proper error handling
func (fp *FileProcessor) ReadFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("Filen %s finns inte", filename), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	defer func() {
		if err := file.Close(); err != nil && fp.logger != nil {
			fp.logger.Warn("Failed to close file", "filename", filename, "error", err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	return string(content), nil
}

// ReadDocument returns the text of a CV or job posting file. Plain text
// files are read as-is, PDF and Word documents go through extraction.
// The result is trimmed.
func (fp *FileProcessor) ReadDocument(filename string) (string, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return "", errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	var (
		text string
		err  error
	)
	switch {
	case utils.IsTextFile(filename):
		text, err = fp.ReadFile(filename)
	case extract.IsSupported(filename):
		text, err = extract.FromFile(filename)
	default:
		if fp.logger != nil {
			fp.logger.Warn("File may not be a text file", "filename", filename)
		}
		text, err = fp.ReadFile(filename)
	}
	if err != nil {
		return "", err
	}

	if fp.logger != nil {
		fp.logger.Debug("Read input document",
			"filename", filepath.Base(filename), "chars", len([]rune(text)))
	}
	return strings.TrimSpace(text), nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename string, content []byte) error {
	if err := utils.EnsureOutputDir(filename); err != nil {
		return errors.NewIOError("DIRECTORY_CREATE_FAILED",
			fmt.Sprintf("Cannot create directory for: %s", filename), err)
	}

	if err := os.WriteFile(filename, content, 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}
