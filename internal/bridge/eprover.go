package bridge

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// NewEProver builds a backend around the E theorem prover. An empty path
// means the binary is looked up as "eprover" on PATH.
func NewEProver(path string, timeout time.Duration, logger *zap.Logger) *ATPProver {
	if path == "" {
		path = "eprover"
	}
	if timeout <= 0 {
		timeout = DefaultATPTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ATPProver{
		name:    "eprover",
		binary:  path,
		timeout: timeout,
		logger:  logger,
		buildArgs: func(seconds int) []string {
			return []string{"--auto", "--cpu-limit=" + strconv.Itoa(seconds)}
		},
	}
}
