package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadedPrompts holds prompt overrides read from disk. Empty fields mean the
// built-in prompt applies.
type LoadedPrompts struct {
	System string
	User   string
}

// ReadPromptFile reads and trims a prompt file. Empty files are rejected.
func ReadPromptFile(filePath, promptType string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s prompt file '%s': %w", promptType, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s prompt file not found: %s", promptType, absPath)
		}
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", promptType, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", promptType, absPath)
	}

	return trimmed, nil
}

// LoadPrompts reads the configured prompt override files.
func (c *Config) LoadPrompts() (LoadedPrompts, error) {
	var loaded LoadedPrompts

	if path := c.LLM.Prompts.SystemFile; path != "" {
		content, err := ReadPromptFile(path, "system")
		if err != nil {
			return LoadedPrompts{}, err
		}
		loaded.System = content
		log.Printf("[CONFIG] Loaded system prompt from file: %s (%d characters)", path, len(content))
	}

	if path := c.LLM.Prompts.UserFile; path != "" {
		content, err := ReadPromptFile(path, "user")
		if err != nil {
			return LoadedPrompts{}, err
		}
		loaded.User = content
		log.Printf("[CONFIG] Loaded user prompt from file: %s (%d characters)", path, len(content))
	}

	return loaded, nil
}

// PromptFiles lists the configured prompt override paths.
func (c *Config) PromptFiles() []string {
	var files []string
	for _, path := range []string{c.LLM.Prompts.SystemFile, c.LLM.Prompts.UserFile} {
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}

// validatePromptFiles checks that configured prompt files exist before startup
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType string) {
		if filePath == "" {
			return
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s prompt: %s", promptType, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s prompt file not found: %s", promptType, absPath))
		}
	}

	validateFile(c.LLM.Prompts.SystemFile, "system")
	validateFile(c.LLM.Prompts.UserFile, "user")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
