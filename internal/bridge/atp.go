package bridge

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"dcec/internal/logic"
)

// DefaultATPTimeout is the per-call resource limit handed to an external
// prover when the configuration does not set one.
const DefaultATPTimeout = 30 * time.Second

// ATPProver runs an external first-order theorem prover over a TPTP rendering
// of the problem. The subprocess gets the timeout as its own resource limit
// and a slightly later hard deadline, so normally the prover reports
// exhaustion itself and the kill path is the fallback.
type ATPProver struct {
	name    string
	binary  string
	timeout time.Duration
	logger  *zap.Logger

	// buildArgs renders the prover-specific resource-limit flags.
	buildArgs func(seconds int) []string
}

func (p *ATPProver) Name() string { return p.name }

// Available reports whether the prover binary resolves on this host.
func (p *ATPProver) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

// Prove renders the axioms and the goal as a TPTP conjecture problem and
// classifies the prover's verdict.
func (p *ATPProver) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) Result {
	if goal == nil {
		return errorResult(fmt.Errorf("%s: nil goal", p.name))
	}
	if !p.Available() {
		return errorResult(fmt.Errorf("%s: binary %q not found", p.name, p.binary))
	}
	problem := WriteTPTP(p.name+"_prove", goal, axioms)
	return p.run(ctx, problem, classifyProve)
}

// CheckSat renders the formula as a lone axiom and asks the prover for a
// saturation verdict.
func (p *ATPProver) CheckSat(ctx context.Context, f logic.Formula) Result {
	if f == nil {
		return errorResult(fmt.Errorf("%s: nil formula", p.name))
	}
	if !p.Available() {
		return errorResult(fmt.Errorf("%s: binary %q not found", p.name, p.binary))
	}
	problem := WriteTPTPSat(p.name+"_sat", f)
	return p.run(ctx, problem, classifySat)
}

func (p *ATPProver) run(ctx context.Context, problem string, classify func(string) ProofStatus) Result {
	seconds := int(p.timeout / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	rr := runProver(ctx, p.binary, p.buildArgs(seconds), problem, p.timeout)
	if rr.err != nil {
		return Result{Status: StatusError, Output: rr.output, Elapsed: rr.elapsed, Err: rr.err}
	}

	status := classify(rr.output)
	if status == StatusUnknown && rr.timedOut {
		status = StatusTimeout
	}
	p.logger.Debug("atp verdict",
		zap.String("prover", p.name),
		zap.String("status", string(status)),
		zap.Int("exit_code", rr.exitCode),
		zap.Bool("truncated", rr.truncated),
		zap.Duration("elapsed", rr.elapsed))

	return Result{
		Status:  status,
		IsValid: status == StatusValid,
		Output:  rr.output,
		Elapsed: rr.elapsed,
	}
}

// szsStatus extracts the word following "SZS status" on any output line.
func szsStatus(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		i := strings.Index(line, "SZS status ")
		if i < 0 {
			continue
		}
		fields := strings.Fields(line[i+len("SZS status "):])
		if len(fields) == 0 {
			continue
		}
		return fields[0], true
	}
	return "", false
}

// classifyProve maps prover output for a conjecture problem onto a status.
// SZS result lines win; the bare progress phrases of older prover releases
// are the fallback.
func classifyProve(output string) ProofStatus {
	if word, ok := szsStatus(output); ok {
		switch word {
		case "Theorem", "Unsatisfiable", "ContradictoryAxioms":
			return StatusValid
		case "CounterSatisfiable", "Satisfiable":
			return StatusInvalid
		case "Timeout", "ResourceOut":
			return StatusTimeout
		}
		return StatusUnknown
	}
	switch {
	case strings.Contains(output, "Proof found"),
		strings.Contains(output, "Refutation found"):
		return StatusValid
	case strings.Contains(output, "CPU time limit exceeded"),
		strings.Contains(output, "Time limit"):
		return StatusTimeout
	}
	return StatusUnknown
}

// classifySat maps prover output for an axiom-only problem onto a status.
func classifySat(output string) ProofStatus {
	if word, ok := szsStatus(output); ok {
		switch word {
		case "Satisfiable", "CounterSatisfiable":
			return StatusSatisfiable
		case "Unsatisfiable", "ContradictoryAxioms", "Theorem":
			return StatusUnsatisfiable
		case "Timeout", "ResourceOut":
			return StatusTimeout
		}
		return StatusUnknown
	}
	switch {
	case strings.Contains(output, "Proof found"),
		strings.Contains(output, "Refutation found"):
		return StatusUnsatisfiable
	case strings.Contains(output, "CPU time limit exceeded"),
		strings.Contains(output, "Time limit"):
		return StatusTimeout
	}
	return StatusUnknown
}
