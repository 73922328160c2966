package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName     string
	HTTPPort        string
	LogLevel        string
	LogCapacity     int
	RateLimitRPS    float64
	RateLimitBurst  int
	EnableSwagger   bool
	EnableEventBus  bool
	ShutdownTimeout time.Duration
	Telemetry       TelemetryConfig
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	Insecure     bool
	SampleRate   float64
}

// fileConfig mirrors Config for the optional YAML file. Pointers tell an
// absent key apart from a zero value.
type fileConfig struct {
	ServiceName     *string  `yaml:"service_name"`
	HTTPPort        *string  `yaml:"http_port"`
	LogLevel        *string  `yaml:"log_level"`
	LogCapacity     *int     `yaml:"log_capacity"`
	RateLimitRPS    *float64 `yaml:"rate_limit_rps"`
	RateLimitBurst  *int     `yaml:"rate_limit_burst"`
	EnableSwagger   *bool    `yaml:"enable_swagger"`
	EnableEventBus  *bool    `yaml:"enable_event_bus"`
	ShutdownTimeout *string  `yaml:"shutdown_timeout"`
	Telemetry       struct {
		Enabled      *bool    `yaml:"enabled"`
		OTLPEndpoint *string  `yaml:"otlp_endpoint"`
		Insecure     *bool    `yaml:"insecure"`
		SampleRate   *float64 `yaml:"sample_rate"`
	} `yaml:"telemetry"`
}

func Default() Config {
	return Config{
		ServiceName:     "picklog",
		HTTPPort:        "8080",
		LogLevel:        "info",
		LogCapacity:     10,
		RateLimitRPS:    0,
		RateLimitBurst:  10,
		EnableSwagger:   true,
		EnableEventBus:  true,
		ShutdownTimeout: 10 * time.Second,
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			Insecure:     true,
			SampleRate:   1.0,
		},
	}
}

// Load builds configuration from defaults, then the YAML file named by
// PICKLOG_CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("PICKLOG_CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.LogCapacity <= 0 {
		return Config{}, fmt.Errorf("log capacity must be positive, got %d", cfg.LogCapacity)
	}
	if cfg.RateLimitRPS < 0 {
		return Config{}, fmt.Errorf("rate limit rps must not be negative, got %v", cfg.RateLimitRPS)
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}

	setIf(&c.ServiceName, file.ServiceName)
	setIf(&c.HTTPPort, file.HTTPPort)
	setIf(&c.LogLevel, file.LogLevel)
	setIf(&c.LogCapacity, file.LogCapacity)
	setIf(&c.RateLimitRPS, file.RateLimitRPS)
	setIf(&c.RateLimitBurst, file.RateLimitBurst)
	setIf(&c.EnableSwagger, file.EnableSwagger)
	setIf(&c.EnableEventBus, file.EnableEventBus)
	setIf(&c.Telemetry.Enabled, file.Telemetry.Enabled)
	setIf(&c.Telemetry.OTLPEndpoint, file.Telemetry.OTLPEndpoint)
	setIf(&c.Telemetry.Insecure, file.Telemetry.Insecure)
	setIf(&c.Telemetry.SampleRate, file.Telemetry.SampleRate)
	if file.ShutdownTimeout != nil {
		timeout, err := time.ParseDuration(*file.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("parse config file %q: shutdown_timeout: %w", path, err)
		}
		c.ShutdownTimeout = timeout
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServiceName = envString("SERVICE_NAME", c.ServiceName)
	c.HTTPPort = envString("HTTP_PORT", c.HTTPPort)
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	c.EnableSwagger = envBool("ENABLE_SWAGGER", c.EnableSwagger)
	c.EnableEventBus = envBool("ENABLE_EVENT_BUS", c.EnableEventBus)
	c.Telemetry.Enabled = envBool("OTEL_ENABLED", c.Telemetry.Enabled)
	c.Telemetry.OTLPEndpoint = envString("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
	c.Telemetry.Insecure = envBool("OTEL_INSECURE", c.Telemetry.Insecure)

	var err error
	if c.LogCapacity, err = envInt("PICKLOG_CAPACITY", c.LogCapacity); err != nil {
		return err
	}
	if c.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", c.RateLimitBurst); err != nil {
		return err
	}
	if c.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", c.RateLimitRPS); err != nil {
		return err
	}
	if c.Telemetry.SampleRate, err = envFloat("OTEL_SAMPLE_RATE", c.Telemetry.SampleRate); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = timeout
	}
	return nil
}

func setIf[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}

func envString(name string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return value, nil
}

func envFloat(name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	return value, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
