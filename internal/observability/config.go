package observability

import (
	"cvoptimizer/internal/config"
)

// Settings is the resolved observability configuration for one process
type Settings struct {
	ServiceName     string
	ServiceVersion  string
	ServiceInstance string
	Enabled         bool
	TracingEnabled  bool
	MetricsEnabled  bool
	ConsoleOutput   bool
	PrettyPrint     bool
	SampleRate      float64
	Prometheus      PrometheusConfig
	Custom          config.CustomMetricsConfig
	OTLP            config.OTLPConfig
	CollectInterval int64 // seconds
}

// SettingsFrom derives Settings from the application config. The binary
// version is used when no service version is configured.
func SettingsFrom(cfg *config.Config, version string) Settings {
	obs := cfg.Observability

	serviceVersion := obs.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	sampleRate := obs.SampleRate
	if obs.Tracing.SampleRate > 0 && obs.Tracing.SampleRate < sampleRate {
		sampleRate = obs.Tracing.SampleRate
	}

	interval := int64(obs.Metrics.CollectionInterval.Seconds())
	if interval <= 0 {
		interval = 15
	}

	return Settings{
		ServiceName:     obs.ServiceName,
		ServiceVersion:  serviceVersion,
		ServiceInstance: obs.ServiceInstance,
		Enabled:         obs.Enabled,
		TracingEnabled:  obs.Tracing.Enabled,
		MetricsEnabled:  obs.Metrics.Enabled,
		ConsoleOutput:   obs.ConsoleOutput || obs.Console.Enabled,
		PrettyPrint:     obs.Console.PrettyPrint,
		SampleRate:      sampleRate,
		Prometheus:      GetPrometheusConfig(cfg),
		Custom:          obs.CustomMetrics,
		OTLP:            obs.OTLP,
		CollectInterval: interval,
	}
}
