// Package config holds the YAML configuration for the reasoner: which
// backends run, their timeouts and resource limits, and logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all dcec configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Prover manager configuration
	Prover ProverConfig `yaml:"prover"`

	// External first-order prover binaries
	ATP ATPConfig `yaml:"atp"`

	// In-process SAT abstraction
	SAT SATConfig `yaml:"sat"`

	// Datalog (Mangle) Horn backend
	Datalog DatalogConfig `yaml:"datalog"`

	// Lemma discovery and cache
	Lemma LemmaConfig `yaml:"lemma"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "dcec",
		Version: "1.0.0",

		Prover: ProverConfig{
			Backends:    []string{"native", "smt", "datalog", "eprover", "vampire"},
			Strategy:    "auto",
			MaxParallel: 4,
			MaxSteps:    100,
			Timeout:     "30s",
		},

		ATP: ATPConfig{
			EProverPath: "eprover",
			VampirePath: "vampire",
			Timeout:     "30s",
		},

		SAT: SATConfig{
			Timeout: "10s",
		},

		Datalog: DatalogConfig{
			FactLimit: 100000,
			Timeout:   "30s",
		},

		Lemma: LemmaConfig{
			CacheSize:     100,
			MinComplexity: 2,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults apply, then environment overrides.
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
	if path := os.Getenv("DCEC_EPROVER"); path != "" {
		c.ATP.EProverPath = path
	}
	if path := os.Getenv("DCEC_VAMPIRE"); path != "" {
		c.ATP.VampirePath = path
	}
	if raw := os.Getenv("DCEC_MAX_PARALLEL"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.Prover.MaxParallel = n
		}
	}
	if level := os.Getenv("DCEC_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// ValidStrategies lists all supported proof strategies.
var ValidStrategies = []string{"auto", "best", "sequential", "parallel"}

// ValidLogLevels lists all supported logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validStrategy := false
	for _, s := range ValidStrategies {
		if c.Prover.Strategy == s {
			validStrategy = true
			break
		}
	}
	if !validStrategy {
		return fmt.Errorf("invalid proof strategy: %s (valid: %v)", c.Prover.Strategy, ValidStrategies)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	if c.Prover.MaxParallel < 1 {
		return fmt.Errorf("max_parallel must be at least 1, got %d", c.Prover.MaxParallel)
	}
	if c.Datalog.FactLimit < 0 {
		return fmt.Errorf("fact_limit must not be negative, got %d", c.Datalog.FactLimit)
	}

	return nil
}
