package bridge

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// NewVampire builds a backend around the Vampire theorem prover. An empty
// path means the binary is looked up as "vampire" on PATH.
func NewVampire(path string, timeout time.Duration, logger *zap.Logger) *ATPProver {
	if path == "" {
		path = "vampire"
	}
	if timeout <= 0 {
		timeout = DefaultATPTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ATPProver{
		name:    "vampire",
		binary:  path,
		timeout: timeout,
		logger:  logger,
		buildArgs: func(seconds int) []string {
			return []string{"--time_limit", strconv.Itoa(seconds)}
		},
	}
}
