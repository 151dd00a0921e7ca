// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL        = "TEMPLATE_API_URL"
	EnvAPITimeout    = "TEMPLATE_API_TIMEOUT"
	EnvRedirectDelay = "TEMPLATE_REDIRECT_DELAY"
)

// Built-in defaults.
const (
	DefaultAPIURL        = "http://localhost:8080/api"
	DefaultTimeout       = "30s"
	DefaultRedirectDelay = "2s"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backend
	APIURL  string            `json:"api_url,omitempty" yaml:"api_url,omitempty" validate:"omitempty,url"` // Template backend base URL
	Timeout string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`                          // Per-request timeout, e.g. "30s"
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" validate:"omitempty,dive,keys,required,endkeys"`

	// Behavior
	RedirectDelay string `json:"redirect_delay,omitempty" yaml:"redirect_delay,omitempty"` // Delay before leaving the editor after a save
	Verbose       bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`               // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		Timeout:       DefaultTimeout,
		RedirectDelay: DefaultRedirectDelay,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Unset
// variables leave fields empty.
func FromEnv() Config {
	return Config{
		APIURL:        os.Getenv(EnvAPIURL),
		Timeout:       os.Getenv(EnvAPITimeout),
		RedirectDelay: os.Getenv(EnvRedirectDelay),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("config error: 'timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'timeout' must be positive")
		}
	}

	if c.RedirectDelay != "" {
		d, err := time.ParseDuration(c.RedirectDelay)
		if err != nil {
			return fmt.Errorf("config error: 'redirect_delay' is not a duration: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'redirect_delay' must be non-negative")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.RedirectDelay == "" {
		result.RedirectDelay = defaults.RedirectDelay
	}

	// Headers merge key by key; explicit values win
	if len(defaults.Headers) > 0 {
		merged := make(map[string]string, len(defaults.Headers)+len(result.Headers))
		for k, v := range defaults.Headers {
			merged[k] = v
		}
		for k, v := range result.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	// Bool fields: cannot distinguish unset from false, so either layer enables
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// TimeoutDuration returns the parsed request timeout, falling back to DefaultTimeout.
func (c *Config) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, DefaultTimeout)
}

// RedirectDelayDuration returns the parsed redirect delay, falling back to DefaultRedirectDelay.
func (c *Config) RedirectDelayDuration() time.Duration {
	return parseDurationOr(c.RedirectDelay, DefaultRedirectDelay)
}

func parseDurationOr(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
