package prover

import (
	"time"

	"dcec/internal/bridge"
)

// Attempt is one backend's contribution to a proving call.
type Attempt struct {
	Backend string        `json:"backend"`
	Result  bridge.Result `json:"result"`
}

// UnifiedResult is the aggregate outcome of one proving call. Backend names
// the entry the verdict came from; Attempts records every backend that ran,
// in completion order.
type UnifiedResult struct {
	RequestID  string             `json:"request_id"`
	Goal       string             `json:"goal"`
	Strategy   Strategy           `json:"strategy"`
	Backend    string             `json:"backend,omitempty"`
	Status     bridge.ProofStatus `json:"status"`
	IsValid    bool               `json:"is_valid"`
	Confidence float64            `json:"confidence"`
	Elapsed    time.Duration      `json:"elapsed"`
	Attempts   []Attempt          `json:"attempts,omitempty"`
	Err        error              `json:"-"`
}

// Stats counts manager activity since construction or the last reset.
type Stats struct {
	TotalProofs int            `json:"total_proofs"`
	ValidProofs int            `json:"valid_proofs"`
	ByBackend   map[string]int `json:"by_backend"`
}
