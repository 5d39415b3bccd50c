// Package config loads and validates blocksmith configuration from YAML
// files, environment overrides and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all blocksmith configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Search engine configuration
	Search SearchConfig `yaml:"search"`

	// Physical law configuration
	Physics PhysicsConfig `yaml:"physics"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig configures the planning search.
type SearchConfig struct {
	Timeout     string `yaml:"timeout"`     // wall-clock budget per plan, e.g. "10s"
	Parallelism int    `yaml:"parallelism"` // max concurrent goal alternatives
}

// PhysicsConfig configures the physical law engine.
type PhysicsConfig struct {
	RulesPath string `yaml:"rules_path"` // extra datalog rules, optional
	Static    bool   `yaml:"static"`     // use the built-in table instead of the rule engine
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "blocksmith",
		Version: "1.0.0",

		Search: SearchConfig{
			Timeout:     "10s",
			Parallelism: 4,
		},

		Physics: PhysicsConfig{},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BLOCKSMITH_SEARCH_TIMEOUT"); v != "" {
		c.Search.Timeout = v
	}
	if v := os.Getenv("BLOCKSMITH_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.Parallelism = n
		}
	}
	if v := os.Getenv("BLOCKSMITH_RULES_PATH"); v != "" {
		c.Physics.RulesPath = v
	}
	if v := os.Getenv("BLOCKSMITH_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
	if v := os.Getenv("BLOCKSMITH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetSearchTimeout returns the search budget as a duration.
func (c *Config) GetSearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Search.Timeout); err != nil {
		return fmt.Errorf("invalid search timeout %q: %w", c.Search.Timeout, err)
	}
	if c.Search.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Search.Parallelism)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}

	if c.Physics.RulesPath != "" {
		if _, err := os.Stat(c.Physics.RulesPath); err != nil {
			return fmt.Errorf("rules file %q: %w", c.Physics.RulesPath, err)
		}
	}
	return nil
}
