// Package config loads the planner settings from the environment.
// A .env file in the working directory is read first; variables already set win.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvModel        = "PLANNER_MODEL"
	EnvTimeout      = "PLANNER_TIMEOUT"
	EnvDebug        = "PLANNER_DEBUG"
	EnvJSON         = "PLANNER_JSON"
	EnvMetricsFile  = "PLANNER_METRICS_FILE"
	EnvMaxInputSize = "PLANNER_MAX_INPUT_SIZE"
)

// DefaultModel is used when PLANNER_MODEL is unset.
const DefaultModel = "gpt-4o"

// DotEnvFile is the optional file loaded before reading the environment.
const DotEnvFile = ".env"

// Config holds all planner settings.
type Config struct {
	// APIKey authenticates against the model provider (OPENAI_API_KEY). Required to plan.
	APIKey string

	// BaseURL points the client at an OpenAI-compatible endpoint (OPENAI_BASE_URL).
	BaseURL string

	// Model is the chat model name (PLANNER_MODEL).
	Model string

	// Timeout bounds each gateway call (PLANNER_TIMEOUT, Go duration). Zero means no bound.
	Timeout time.Duration

	// Debug enables debug logs on stderr (PLANNER_DEBUG).
	Debug bool

	// JSON switches the dialogue to JSON Lines on stdin/stdout (PLANNER_JSON).
	JSON bool

	// MetricsFile receives a Prometheus text snapshot after the run (PLANNER_METRICS_FILE).
	MetricsFile string

	// MaxInputSize caps a user line in bytes (PLANNER_MAX_INPUT_SIZE). Zero keeps the default.
	MaxInputSize int
}

// Load reads dir/.env when present and then the process environment.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, DotEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &domain.ConfigError{Key: DotEnvFile, Reason: "cannot parse", Err: err}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:      os.Getenv(EnvAPIKey),
		BaseURL:     os.Getenv(EnvBaseURL),
		Model:       getEnvDefault(EnvModel, DefaultModel),
		MetricsFile: os.Getenv(EnvMetricsFile),
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, &domain.ConfigError{Key: EnvTimeout, Reason: "must be a non-negative duration such as 90s", Err: err}
		}
		cfg.Timeout = d
	}

	if err := boolEnv(EnvDebug, &cfg.Debug); err != nil {
		return Config{}, err
	}
	if err := boolEnv(EnvJSON, &cfg.JSON); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(EnvMaxInputSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, &domain.ConfigError{Key: EnvMaxInputSize, Reason: "must be a positive integer", Err: err}
		}
		cfg.MaxInputSize = n
	}

	return cfg, nil
}

// Validate checks the settings a planning run cannot start without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return &domain.ConfigError{Key: EnvAPIKey, Reason: "not set; export it or add it to " + DotEnvFile}
	}
	return nil
}

func boolEnv(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &domain.ConfigError{Key: key, Reason: "must be a boolean", Err: err}
	}
	*dst = b
	return nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
