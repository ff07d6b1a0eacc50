package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "dcec" {
		t.Errorf("expected Name=dcec, got %s", cfg.Name)
	}
	if cfg.Prover.Strategy != "auto" {
		t.Errorf("expected Strategy=auto, got %s", cfg.Prover.Strategy)
	}
	if cfg.Prover.MaxParallel != 4 {
		t.Errorf("expected MaxParallel=4, got %d", cfg.Prover.MaxParallel)
	}
	if len(cfg.Prover.Backends) == 0 || cfg.Prover.Backends[0] != "native" {
		t.Errorf("expected native-first backends, got %v", cfg.Prover.Backends)
	}
	if cfg.Datalog.FactLimit != 100000 {
		t.Errorf("expected FactLimit=100000, got %d", cfg.Datalog.FactLimit)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("DCEC_EPROVER", "")
	t.Setenv("DCEC_VAMPIRE", "")
	t.Setenv("DCEC_MAX_PARALLEL", "")
	t.Setenv("DCEC_LOG_LEVEL", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Prover.Strategy = "parallel"
	cfg.ATP.EProverPath = "/opt/e/bin/eprover"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Prover.Strategy != "parallel" {
		t.Errorf("expected Strategy=parallel, got %s", loaded.Prover.Strategy)
	}
	if loaded.ATP.EProverPath != "/opt/e/bin/eprover" {
		t.Errorf("expected EProverPath=/opt/e/bin/eprover, got %s", loaded.ATP.EProverPath)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("DCEC_MAX_PARALLEL", "")
	t.Setenv("DCEC_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Prover.Strategy != "auto" {
		t.Errorf("expected default Strategy=auto, got %s", cfg.Prover.Strategy)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid default config, got error: %v", err)
	}

	cfg.Prover.Strategy = "guess"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown strategy")
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}

	cfg = DefaultConfig()
	cfg.Prover.MaxParallel = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero max_parallel")
	}
}

func TestConfig_TimeoutHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetProofTimeout() != 30*time.Second {
		t.Errorf("GetProofTimeout = %v", cfg.GetProofTimeout())
	}
	if cfg.GetSATTimeout() != 10*time.Second {
		t.Errorf("GetSATTimeout = %v", cfg.GetSATTimeout())
	}

	// Unparseable duration falls back
	cfg.ATP.Timeout = "soon"
	if cfg.GetATPTimeout() != 30*time.Second {
		t.Errorf("GetATPTimeout fallback = %v", cfg.GetATPTimeout())
	}
}
