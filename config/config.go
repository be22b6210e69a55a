// Package config loads the client configuration from an optional yaml file
// with environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	SessionFile    string `yaml:"session_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=0"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default matches the development backend the original deployment talks to.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:8000/api",
		SessionFile:    "hrportal-session.json",
		TimeoutSeconds: 30,
	}
}

// Load reads path (skipped when empty or missing), applies the
// HRPORTAL_BASE_URL / HRPORTAL_SESSION_FILE / HRPORTAL_TIMEOUT environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("unmarshal yaml: %w", err)
			}
		}
	}

	if v := os.Getenv("HRPORTAL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HRPORTAL_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("HRPORTAL_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HRPORTAL_TIMEOUT %q: %w", v, err)
		}
		cfg.TimeoutSeconds = secs
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var (
	loadOnce sync.Once
	loaded   Config
	loadErr  error
)

// Get loads the configuration once per process, from the file named by
// HRPORTAL_CONFIG when set.
func Get() (Config, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Load(os.Getenv("HRPORTAL_CONFIG"))
	})
	return loaded, loadErr
}
