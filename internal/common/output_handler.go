package common

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/render"
)

// CommandConfig holds common configuration for commands
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// OutputHandler renders optimized CV text and writes it to a file or stdout
type OutputHandler struct {
	fileProcessor *FileProcessor
	registry      *render.Registry
	logger        *errors.Logger
	stdout        io.Writer
}

// NewOutputHandler creates a new output handler
func NewOutputHandler(logger *errors.Logger, registry *render.Registry) *OutputHandler {
	return &OutputHandler{
		fileProcessor: NewFileProcessor(logger),
		registry:      registry,
		logger:        logger,
		stdout:        os.Stdout,
	}
}

// SetOutput replaces stdout as the destination when no output file is set
func (oh *OutputHandler) SetOutput(w io.Writer) {
	oh.stdout = w
}

// HandleOutput renders text in the configured format and writes it
func (oh *OutputHandler) HandleOutput(text string, config CommandConfig) error {
	if err := ValidateOutputFormat(config.OutputFormat, oh.registry.Formats()); err != nil {
		return err
	}
	renderer, err := oh.registry.Get(config.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat, err.Error(), err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, text); err != nil {
		return errors.NewInternalError(errors.ErrCodeRenderFailed,
			fmt.Sprintf("Failed to render output as %s", config.OutputFormat), err)
	}

	if config.OutputFile == "" {
		if _, err := oh.stdout.Write(buf.Bytes()); err != nil {
			return errors.NewIOError("STDOUT_WRITE_FAILED", "Cannot write to stdout", err)
		}
		return nil
	}

	if err := oh.fileProcessor.WriteFile(config.OutputFile, buf.Bytes()); err != nil {
		return err
	}
	if oh.logger != nil {
		oh.logger.Info("Output written successfully",
			"file", config.OutputFile, "format", config.OutputFormat, "bytes", buf.Len())
	}
	return nil
}
