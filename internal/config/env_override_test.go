package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides_Paths(t *testing.T) {
	t.Run("DCEC_EPROVER overrides the binary path", func(t *testing.T) {
		t.Setenv("DCEC_EPROVER", "/usr/local/bin/eprover")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/usr/local/bin/eprover", cfg.ATP.EProverPath)
	})

	t.Run("DCEC_VAMPIRE overrides the binary path", func(t *testing.T) {
		t.Setenv("DCEC_VAMPIRE", "/usr/local/bin/vampire")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/usr/local/bin/vampire", cfg.ATP.VampirePath)
	})

	t.Run("empty value leaves the file setting alone", func(t *testing.T) {
		t.Setenv("DCEC_EPROVER", "")

		cfg := DefaultConfig()
		cfg.ATP.EProverPath = "/from/file/eprover"
		cfg.applyEnvOverrides()

		assert.Equal(t, "/from/file/eprover", cfg.ATP.EProverPath)
	})
}

func TestEnvOverrides_MaxParallel(t *testing.T) {
	t.Run("valid integer applies", func(t *testing.T) {
		t.Setenv("DCEC_MAX_PARALLEL", "8")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 8, cfg.Prover.MaxParallel)
	})

	t.Run("garbage is ignored", func(t *testing.T) {
		t.Setenv("DCEC_MAX_PARALLEL", "many")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 4, cfg.Prover.MaxParallel)
	})

	t.Run("non-positive is ignored", func(t *testing.T) {
		t.Setenv("DCEC_MAX_PARALLEL", "0")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 4, cfg.Prover.MaxParallel)
	})
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	t.Setenv("DCEC_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "debug", cfg.Logging.Level)
}
