// Package config loads checker settings from the environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/vertti/importcheck/pkg/logging"
	"github.com/vertti/importcheck/pkg/metrics"
)

// Config holds the ambient settings shared by both checkers. The module
// lists themselves are compiled in and are not configurable.
type Config struct {
	Python  string        `yaml:"python" toml:"python" env:"IMPORTCHECK_PYTHON" env-default:"python3"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout" env:"IMPORTCHECK_TIMEOUT" env-default:"2m"`
	Verbose bool          `yaml:"verbose" toml:"verbose" env:"IMPORTCHECK_VERBOSE"`

	Log     LogConfig     `yaml:"log" toml:"log"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// LogConfig configures pkg/logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" env:"IMPORTCHECK_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" toml:"format" env:"IMPORTCHECK_LOG_FORMAT" env-default:"text"`
	Output string `yaml:"output" toml:"output" env:"IMPORTCHECK_LOG_OUTPUT" env-default:"stderr"`
	File   string `yaml:"file" toml:"file" env:"IMPORTCHECK_LOG_FILE"`
}

// MetricsConfig configures pkg/metrics.
type MetricsConfig struct {
	File           string        `yaml:"file" toml:"file" env:"IMPORTCHECK_METRICS_FILE"`
	PushgatewayURL string        `yaml:"pushgatewayUrl" toml:"pushgateway_url" env:"IMPORTCHECK_PUSHGATEWAY_URL"`
	Job            string        `yaml:"job" toml:"job" env:"IMPORTCHECK_METRICS_JOB"`
	Timeout        time.Duration `yaml:"timeout" toml:"timeout" env:"IMPORTCHECK_METRICS_TIMEOUT" env-default:"10s"`
}

var (
	ErrInvalidTimeout   = errors.New("config: timeout must be positive")
	ErrInvalidLogLevel  = errors.New("config: unknown log level")
	ErrInvalidLogFormat = errors.New("config: unknown log format")
	ErrInvalidLogOutput = errors.New("config: unknown log output")
)

// Load reads the configuration. With a non-empty path the file is read first
// (YAML, TOML, JSON or .env by extension) and environment variables override
// it; otherwise only the environment is read.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	switch c.Log.Output {
	case logging.OutputStderr, logging.OutputFile:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogOutput, c.Log.Output)
	}
	return c.MetricsSettings("").Validate()
}

// LoggingSettings converts the log section for logging.NewLogger.
func (c *Config) LoggingSettings() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.Output = c.Log.Output
	lc.FilePath = c.Log.File
	return lc
}

// MetricsSettings converts the metrics section for metrics.NewCollector.
// defaultJob names the Pushgateway job when none is configured.
func (c *Config) MetricsSettings(defaultJob string) metrics.Config {
	job := c.Metrics.Job
	if job == "" {
		job = defaultJob
	}
	if job == "" {
		job = "importcheck"
	}
	return metrics.Config{
		TextfilePath:   c.Metrics.File,
		PushgatewayURL: c.Metrics.PushgatewayURL,
		JobName:        job,
		Timeout:        c.Metrics.Timeout,
	}
}
