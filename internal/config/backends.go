package config

import "time"

// ProverConfig configures the prover manager.
type ProverConfig struct {
	// Enabled backends, in registry order
	Backends []string `yaml:"backends"`

	// Default strategy: auto, best, sequential, parallel
	Strategy string `yaml:"strategy"`

	// Worker pool size for the parallel strategy
	MaxParallel int `yaml:"max_parallel"`

	// Step budget for the native rule engine
	MaxSteps int `yaml:"max_steps"`

	// Default per-backend timeout
	Timeout string `yaml:"timeout"`

	// Route operator-wrapped goals like any other formula
	DisableSMTPreference bool `yaml:"disable_smt_preference"`
}

// ATPConfig configures the external first-order provers.
type ATPConfig struct {
	EProverPath string `yaml:"eprover_path"`
	VampirePath string `yaml:"vampire_path"`
	Timeout     string `yaml:"timeout"`
}

// SATConfig configures the in-process SAT abstraction.
type SATConfig struct {
	Timeout string `yaml:"timeout"`
}

// DatalogConfig configures the Mangle Horn backend.
type DatalogConfig struct {
	FactLimit int    `yaml:"fact_limit"`
	Timeout   string `yaml:"timeout"`
}

// LemmaConfig configures lemma discovery.
type LemmaConfig struct {
	CacheSize     int `yaml:"cache_size"`
	MinComplexity int `yaml:"min_complexity"`
}

// GetProofTimeout returns the default per-backend timeout as a duration.
func (c *Config) GetProofTimeout() time.Duration {
	d, err := time.ParseDuration(c.Prover.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetATPTimeout returns the external prover timeout as a duration.
func (c *Config) GetATPTimeout() time.Duration {
	d, err := time.ParseDuration(c.ATP.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetSATTimeout returns the SAT solve timeout as a duration.
func (c *Config) GetSATTimeout() time.Duration {
	d, err := time.ParseDuration(c.SAT.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetDatalogTimeout returns the Datalog evaluation timeout as a duration.
func (c *Config) GetDatalogTimeout() time.Duration {
	d, err := time.ParseDuration(c.Datalog.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
