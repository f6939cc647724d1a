package common

import (
	"context"

	"cvoptimizer/internal/errors"

	"golang.org/x/sync/errgroup"
)

// JobFetcher retrieves job posting text from a URL
type JobFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// InputSources names where a command reads its CV and job posting from.
// The job posting comes from exactly one of JobFile and JobURL.
type InputSources struct {
	CVFile  string
	JobFile string
	JobURL  string
}

// Validate checks that the sources are complete and unambiguous
func (s InputSources) Validate() error {
	if s.CVFile == "" {
		return errors.NewValidationError(errors.ErrCodeMissingInput, "--cv is required", nil)
	}
	switch {
	case s.JobFile == "" && s.JobURL == "":
		return errors.NewValidationError(errors.ErrCodeMissingInput, "either --job or --job-url is required", nil)
	case s.JobFile != "" && s.JobURL != "":
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "use only one of --job and --job-url", nil)
	}
	return nil
}

// Inputs holds the loaded CV and job posting text
type Inputs struct {
	CV  string
	Job string
}

// LoadInputs reads the CV and the job posting concurrently
func LoadInputs(ctx context.Context, fp *FileProcessor, fetcher JobFetcher, sources InputSources) (Inputs, error) {
	if err := sources.Validate(); err != nil {
		return Inputs{}, err
	}

	var inputs Inputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := fp.ReadDocument(sources.CVFile)
		if err != nil {
			return err
		}
		if text == "" {
			return errors.NewValidationError(errors.ErrCodeEmptyText, "CV-texten är tom", nil)
		}
		inputs.CV = text
		return nil
	})

	g.Go(func() error {
		var (
			text string
			err  error
		)
		if sources.JobURL != "" {
			text, err = fetcher.Fetch(gctx, sources.JobURL)
		} else {
			text, err = fp.ReadDocument(sources.JobFile)
		}
		if err != nil {
			return err
		}
		if text == "" {
			return errors.NewValidationError(errors.ErrCodeEmptyText, "Jobbannonsen är tom", nil)
		}
		inputs.Job = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return inputs, nil
}

// OperationFunc computes a command result from the loaded inputs
type OperationFunc[Output any] func(context.Context, Inputs) (Output, error)

// OutputFunc emits a command result
type OutputFunc[Output any] func(Output) error

// RunCommand encapsulates the common flow of the file-based CLI commands:
// load inputs, run the operation, emit the result.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	fetcher JobFetcher,
	sources InputSources,
	operation OperationFunc[Output],
	output OutputFunc[Output],
) error {
	inputs, err := LoadInputs(ctx, NewFileProcessor(logger), fetcher, sources)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Loaded inputs",
			"cv_chars", len([]rune(inputs.CV)),
			"job_chars", len([]rune(inputs.Job)),
			"job_source", jobSource(sources))
	}

	result, err := operation(ctx, inputs)
	if err != nil {
		return err
	}
	return output(result)
}

func jobSource(s InputSources) string {
	if s.JobURL != "" {
		return "url"
	}
	return "file"
}
