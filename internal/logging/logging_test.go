package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"dcec/internal/config"
)

func TestNewDefaults(t *testing.T) {
	logger, err := New(config.LoggingConfig{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Sync()

	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled by default")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled by default")
	}
}

func TestNewDebugLevel(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "debug"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcec.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "text", File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("proof attempt started")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "proof attempt started") {
		t.Errorf("log file should carry the message, got %q", string(data))
	}
}
