package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "http://127.0.0.1:1234", cfg.LLM.BaseURL)
	assert.Equal(t, "meta-llama-3.1-8b-instruct", cfg.LLM.Model)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.LLM.CircuitBreaker.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, true},
		{"gemini without key", func(c *Config) { c.LLM.Provider = "gemini"; c.LLM.APIKey = "" }, true},
		{"gemini with key", func(c *Config) { c.LLM.Provider = "gemini"; c.LLM.APIKey = "k"; c.LLM.Model = "gemini-2.0-flash" }, false},
		{"gemini key from vault", func(c *Config) {
			c.LLM.Provider = "gemini"
			c.LLM.APIKey = ""
			c.Vault.Enabled = true
			c.Vault.Secrets.LLMKey = "secret/data/llm"
		}, false},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = 0 }, true},
		{"temperature out of range", func(c *Config) { c.LLM.Temperature = 3 }, true},
		{"bad breaker threshold", func(c *Config) {
			c.LLM.CircuitBreaker.Enabled = true
			c.LLM.CircuitBreaker.FailureThreshold = 1.5
		}, true},
		{"tls cert without key", func(c *Config) { c.Server.TLSCertFile = "cert.pem" }, true},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "mongo" }, true},
		{"redis without url", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"s3 with bucket", func(c *Config) { c.Storage.Backend = "s3"; c.Storage.S3.Bucket = "cvs" }, false},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"memory", func(c *Config) { c.Storage.Backend = "memory" }, false},
		{"bad default format", func(c *Config) { c.App.DefaultFormat = "markdown" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyFallbacksSplitsLists(t *testing.T) {
	t.Setenv("CVOPTIMIZER_SERVER_APIKEYS", " a , b,")

	cfg := &Config{
		Server: ServerConfig{CORSOrigins: []string{"http://localhost:3000, https://cv.example.com"}},
	}
	cfg.applyFallbacks()

	assert.Equal(t, []string{"a", "b"}, cfg.Server.APIKeys)
	assert.Equal(t, []string{"http://localhost:3000", "https://cv.example.com"}, cfg.Server.CORSOrigins)
}

func TestApplyLLMKeyFallbacks(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	gemini := &Config{LLM: LLMConfig{Provider: "gemini"}}
	gemini.applyLLMKeyFallbacks()
	assert.Equal(t, "gem-key", gemini.LLM.APIKey)

	openai := &Config{LLM: LLMConfig{Provider: "openai"}}
	openai.applyLLMKeyFallbacks()
	assert.Equal(t, "oa-key", openai.LLM.APIKey)

	explicit := &Config{LLM: LLMConfig{Provider: "openai", APIKey: "set"}}
	explicit.applyLLMKeyFallbacks()
	assert.Equal(t, "set", explicit.LLM.APIKey)
}
