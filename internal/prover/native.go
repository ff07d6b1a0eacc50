package prover

import (
	"context"
	"errors"
	"time"

	"dcec/internal/bridge"
	"dcec/internal/logic"
	"dcec/internal/proof"
	"dcec/internal/rules"
)

// nativeSatPasses bounds the saturation passes CheckSat runs while looking
// for a contradiction signal.
const nativeSatPasses = 3

// Native adapts the rule-driven proof search to the backend interface, so
// the manager can schedule it next to the external provers.
type Native struct {
	ruleset  []rules.Rule
	strategy proof.Strategy
}

var _ bridge.Prover = (*Native)(nil)

// NewNative wraps the hybrid strategy over the given rules.
func NewNative(ruleset []rules.Rule, opts proof.Options) *Native {
	return &Native{ruleset: ruleset, strategy: proof.NewHybrid(ruleset, opts)}
}

func (n *Native) Name() string { return "native" }

// Available is always true: the rule engine runs in process.
func (n *Native) Available() bool { return true }

// Prove runs the native search and carries its rendered proof tree as the
// raw output.
func (n *Native) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) bridge.Result {
	if goal == nil {
		return bridge.Result{Status: bridge.StatusError, Err: errors.New("native: nil goal")}
	}
	tree := n.strategy.Prove(ctx, goal, axioms)
	res := bridge.Result{
		Output:  tree.RenderASCII(),
		Elapsed: tree.Result.Duration,
		Err:     tree.Result.Err,
	}
	switch tree.Result.Status {
	case proof.StatusProved:
		res.Status = bridge.StatusValid
		res.IsValid = true
	case proof.StatusTimeout:
		res.Status = bridge.StatusTimeout
	case proof.StatusError:
		res.Status = bridge.StatusError
	default:
		res.Status = bridge.StatusUnknown
	}
	return res
}

// CheckSat saturates the conjuncts for a few passes and reports
// unsatisfiability when a rule signals a contradiction. Absence of a signal
// proves nothing, so the fallback verdict is UNKNOWN.
func (n *Native) CheckSat(ctx context.Context, f logic.Formula) bridge.Result {
	if f == nil {
		return bridge.Result{Status: bridge.StatusError, Err: errors.New("native: nil formula")}
	}
	start := time.Now()

	set := conjuncts(f)
	seen := make(map[string]bool, len(set))
	for _, g := range set {
		seen[logic.Key(g)] = true
	}

	for pass := 0; pass < nativeSatPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return bridge.Result{Status: bridge.StatusTimeout, Elapsed: time.Since(start), Err: err}
		}
		added := 0
		for _, r := range n.ruleset {
			out, err := r.Apply(set)
			var cerr *rules.ContradictionError
			if errors.As(err, &cerr) {
				return bridge.Result{
					Status:  bridge.StatusUnsatisfiable,
					Output:  cerr.Error(),
					Elapsed: time.Since(start),
				}
			}
			if err != nil {
				continue
			}
			for _, g := range out {
				k := logic.Key(g)
				if !seen[k] {
					seen[k] = true
					set = append(set, g)
					added++
				}
			}
		}
		if added == 0 {
			break
		}
	}
	return bridge.Result{Status: bridge.StatusUnknown, Elapsed: time.Since(start)}
}

// conjuncts flattens a top-level conjunction.
func conjuncts(f logic.Formula) []logic.Formula {
	if c, ok := f.(*logic.Connective); ok && c.Op == logic.OpAnd {
		return append([]logic.Formula(nil), c.Operands...)
	}
	return []logic.Formula{f}
}
