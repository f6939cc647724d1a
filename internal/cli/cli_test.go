package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/keywords"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCV  = "Anna Andersson\nBackendutvecklare med Go, Kubernetes och PostgreSQL.\nGo Go Kubernetes"
	testJob = "Vi söker en utvecklare med Go, Kubernetes och Terraform. Terraform Terraform Go"
)

// runCLI executes the root command with a fresh flag state and returns stdout
func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	for _, cmd := range rootCmd.Commands() {
		resetFlags(cmd)
	}
	optimizeConfig.OutputFile, optimizeConfig.OutputFormat = "", ""

	logger := errors.NewLoggerWithWriter(io.Discard, slog.LevelError)
	ctx := context.WithValue(context.Background(), configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	// cobra only hands the root context to subcommands that have none yet
	for _, cmd := range rootCmd.Commands() {
		cmd.SetContext(ctx)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := Execute(ctx, cfg, logger)
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func fakeLLM(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		body, err := json.Marshal(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "meta-llama-3.1-8b-instruct",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, config.Default(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cvoptimizer version "+Version)
}

func TestKeywordsCommand(t *testing.T) {
	cvPath := writeFile(t, "cv.txt", testCV)
	jobPath := writeFile(t, "job.md", testJob)

	out, err := runCLI(t, config.Default(), "keywords", "--cv", cvPath, "--job", jobPath, "--top", "10")
	require.NoError(t, err)

	var got keywords.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, keywords.Compare(testJob, testCV, 10), got)
	assert.Contains(t, got.Missing, "terraform")
	assert.Contains(t, got.Matched, "kubernetes")
}

func TestKeywordsCommandRequiresInputs(t *testing.T) {
	_, err := runCLI(t, config.Default(), "keywords", "--job", writeFile(t, "job.txt", testJob))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--cv is required")
}

func TestKeywordsCommandRejectsBothJobSources(t *testing.T) {
	_, err := runCLI(t, config.Default(), "keywords",
		"--cv", writeFile(t, "cv.txt", testCV),
		"--job", writeFile(t, "job.txt", testJob),
		"--job-url", "http://example.invalid/job")
	require.Error(t, err)
}

func TestOptimizeCommandToFile(t *testing.T) {
	optimized := "=== SVENSKA CV ===\nAnna\n\n=== ENGLISH CV ===\nAnna"
	srv := fakeLLM(t, optimized)

	cfg := config.Default()
	cfg.LLM.BaseURL = srv.URL
	outPath := filepath.Join(t.TempDir(), "out", "cv.txt")

	out, err := runCLI(t, cfg, "optimize",
		"--cv", writeFile(t, "cv.txt", testCV),
		"--job", writeFile(t, "job.txt", testJob),
		"-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, optimized, string(written))
}

func TestOptimizeCommandJSONToStdout(t *testing.T) {
	srv := fakeLLM(t, "åäö")

	cfg := config.Default()
	cfg.LLM.BaseURL = srv.URL

	out, err := runCLI(t, cfg, "optimize",
		"--cv", writeFile(t, "cv.txt", testCV),
		"--job", writeFile(t, "job.txt", testJob),
		"--format", "json")
	require.NoError(t, err)

	var got struct {
		OptimizedCV string `json:"optimized_cv"`
		Length      int    `json:"length"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "åäö", got.OptimizedCV)
	assert.Equal(t, 3, got.Length)
}

func TestOptimizeCommandRejectsCookieText(t *testing.T) {
	srv := fakeLLM(t, "unused")

	cfg := config.Default()
	cfg.LLM.BaseURL = srv.URL

	_, err := runCLI(t, cfg, "optimize",
		"--cv", writeFile(t, "cv.txt", testCV),
		"--job", writeFile(t, "job.txt", "Vi använder cookies för att förbättra din upplevelse"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestOptimizeCommandRejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, config.Default(), "optimize",
		"--cv", writeFile(t, "cv.txt", testCV),
		"--job", writeFile(t, "job.txt", testJob),
		"--format", "markdown")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported output format 'markdown'"))
}

func TestApplyServeFlags(t *testing.T) {
	resetFlags(serveCmd)
	cfg := config.Default()
	host := cfg.Server.Host

	require.NoError(t, serveCmd.Flags().Set("port", "9090"))
	require.NoError(t, applyServeFlags(serveCmd, cfg))

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, host, cfg.Server.Host)
	resetFlags(serveCmd)
}
