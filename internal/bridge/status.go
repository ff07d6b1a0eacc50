// Package bridge connects the formula model to external decision procedures:
// an in-process SAT backend over a boolean abstraction, SMT-LIB and TPTP
// problem writers, and subprocess adapters for first-order provers. Every
// backend normalizes its outcome to the shared ProofStatus vocabulary.
package bridge

import (
	"context"
	"time"

	"dcec/internal/logic"
)

// ProofStatus is the normalized verdict of an external backend.
type ProofStatus string

const (
	StatusValid         ProofStatus = "VALID"
	StatusInvalid       ProofStatus = "INVALID"
	StatusSatisfiable   ProofStatus = "SATISFIABLE"
	StatusUnsatisfiable ProofStatus = "UNSATISFIABLE"
	StatusUnknown       ProofStatus = "UNKNOWN"
	StatusError         ProofStatus = "ERROR"
	StatusTimeout       ProofStatus = "TIMEOUT"
)

// Result carries a backend verdict together with its raw output and timing.
// Model holds a counterexample assignment when the backend found one.
type Result struct {
	Status  ProofStatus     `json:"status"`
	IsValid bool            `json:"is_valid"`
	Output  string          `json:"output,omitempty"`
	Elapsed time.Duration   `json:"elapsed"`
	Err     error           `json:"-"`
	Model   map[string]bool `json:"model,omitempty"`
}

// Prover is one external decision procedure. Prove establishes that the
// axioms entail the goal; CheckSat asks whether a single formula is
// satisfiable on its own.
type Prover interface {
	Name() string
	Available() bool
	Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) Result
	CheckSat(ctx context.Context, f logic.Formula) Result
}

func errorResult(err error) Result {
	return Result{Status: StatusError, Err: err}
}
