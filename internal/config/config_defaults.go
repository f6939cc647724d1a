package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM - a local LM Studio style server
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.baseURL", "http://127.0.0.1:1234")
	v.SetDefault("llm.geminiBaseURL", "")
	v.SetDefault("llm.model", "meta-llama-3.1-8b-instruct")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("llm.apiKey", "")

	v.SetDefault("llm.circuitBreaker.enabled", false)
	v.SetDefault("llm.circuitBreaker.maxRequests", 3)
	v.SetDefault("llm.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("llm.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("llm.circuitBreaker.minRequests", 3)
	v.SetDefault("llm.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("llm.prompts.systemFile", "")
	v.SetDefault("llm.prompts.userFile", "")
	v.SetDefault("llm.prompts.watch", false)
	v.SetDefault("llm.prompts.debounceDelay", time.Second)

	// Server Configuration
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 180*time.Second) // must outlive the LLM timeout
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)
	v.SetDefault("server.corsOrigins", []string{"http://localhost:3000"})
	v.SetDefault("server.tlsCertFile", "")
	v.SetDefault("server.tlsKeyFile", "")
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.maxRequestSize", 2*1024*1024)
	v.SetDefault("server.maxUploadSize", 20*1024*1024)

	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Storage
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.redis.url", "")
	v.SetDefault("storage.redis.keyPrefix", "cvoptimizer:")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.region", "auto")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.accessKeyID", "")
	v.SetDefault("storage.s3.secretAccessKey", "")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.table", "cv_slots")

	// Job posting fetch
	v.SetDefault("scrape.timeout", 10*time.Second)
	v.SetDefault("scrape.userAgent", "Mozilla/5.0 (compatible; cvoptimizer/1.0)")
	v.SetDefault("scrape.browser.enabled", false)
	v.SetDefault("scrape.browser.timeout", 30*time.Second)
	v.SetDefault("scrape.browser.wait", 2*time.Second)

	// Uploads
	v.SetDefault("uploads.tempDir", "")
	v.SetDefault("uploads.sweepSchedule", "@every 30m")
	v.SetDefault("uploads.maxAge", time.Hour)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"text", "json", "docx", "pdf"})
	v.SetDefault("app.maxFileSize", 20*1024*1024)

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.llmKey", "")
	v.SetDefault("vault.secrets.storage", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "cvoptimizer")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.serviceInstance", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	v.SetDefault("observability.customMetrics.llm.enabled", true)
	v.SetDefault("observability.customMetrics.llm.trackDuration", true)
	v.SetDefault("observability.customMetrics.llm.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.business.enabled", true)
	v.SetDefault("observability.customMetrics.business.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
