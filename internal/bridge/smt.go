package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	glogic "github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"go.uber.org/zap"

	"dcec/internal/logic"
)

// DefaultSATTimeout bounds one satisfiability call when the caller's context
// carries no deadline.
const DefaultSATTimeout = 10 * time.Second

// SMTProver decides the boolean abstraction of a problem with an in-process
// SAT solver. Operator wrappers and quantified subformulas become opaque
// boolean variables, so a verdict certifies the propositional skeleton only.
type SMTProver struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewSMTProver builds the in-process backend; a non-positive timeout falls
// back to DefaultSATTimeout.
func NewSMTProver(timeout time.Duration, logger *zap.Logger) *SMTProver {
	if timeout <= 0 {
		timeout = DefaultSATTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTProver{timeout: timeout, logger: logger}
}

func (p *SMTProver) Name() string { return "smt" }

// Available is always true: the solver runs in process.
func (p *SMTProver) Available() bool { return true }

// Prove asserts the axioms together with the negated goal. An unsatisfiable
// conjunction certifies the goal; a satisfying assignment is returned as a
// counterexample.
func (p *SMTProver) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) Result {
	if goal == nil {
		return errorResult(fmt.Errorf("smt: nil goal"))
	}
	start := time.Now()
	tr := newCircuitTranslator()
	lits := make([]z.Lit, 0, len(axioms)+1)
	for _, ax := range axioms {
		if ax == nil {
			continue
		}
		lits = append(lits, tr.lit(ax))
	}
	lits = append(lits, tr.lit(goal).Not())

	verdict, model := p.solve(ctx, tr, lits)
	res := Result{Elapsed: time.Since(start)}
	switch verdict {
	case -1:
		res.Status = StatusValid
		res.IsValid = true
	case 1:
		res.Status = StatusInvalid
		res.Model = model
	default:
		res.Status = StatusTimeout
	}
	p.logger.Debug("sat verdict",
		zap.String("goal", logic.Key(goal)),
		zap.String("status", string(res.Status)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// CheckSat asserts the formula directly.
func (p *SMTProver) CheckSat(ctx context.Context, f logic.Formula) Result {
	if f == nil {
		return errorResult(fmt.Errorf("smt: nil formula"))
	}
	start := time.Now()
	tr := newCircuitTranslator()
	verdict, model := p.solve(ctx, tr, []z.Lit{tr.lit(f)})

	res := Result{Elapsed: time.Since(start)}
	switch verdict {
	case 1:
		res.Status = StatusSatisfiable
		res.Model = model
	case -1:
		res.Status = StatusUnsatisfiable
	default:
		res.Status = StatusTimeout
	}
	return res
}

// solve conjoins the literals, clausifies the cone, and runs the solver
// under the shorter of the configured timeout and the context deadline.
// The returned verdict follows the solver convention: 1 satisfiable,
// -1 unsatisfiable, 0 undetermined.
func (p *SMTProver) solve(ctx context.Context, tr *circuitTranslator, lits []z.Lit) (int, map[string]bool) {
	root := lits[0]
	if len(lits) > 1 {
		root = tr.c.Ands(lits...)
	}
	g := gini.New()
	tr.c.ToCnfFrom(g, root)
	g.Assume(root)

	d := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < d {
			d = until
		}
	}
	if d <= 0 {
		return 0, nil
	}
	verdict := g.Try(d)
	if verdict != 1 {
		return verdict, nil
	}
	model := make(map[string]bool, len(tr.vars))
	for name, lit := range tr.vars {
		model[name] = g.Value(lit)
	}
	return verdict, model
}

// circuitTranslator maps formulas onto a boolean circuit, one fresh variable
// per distinct abstraction unit.
type circuitTranslator struct {
	c    *glogic.C
	vars map[string]z.Lit
}

func newCircuitTranslator() *circuitTranslator {
	return &circuitTranslator{c: glogic.NewC(), vars: map[string]z.Lit{}}
}

func (t *circuitTranslator) atomVar(name string) z.Lit {
	if lit, ok := t.vars[name]; ok {
		return lit
	}
	lit := t.c.Lit()
	t.vars[name] = lit
	return lit
}

func (t *circuitTranslator) lit(f logic.Formula) z.Lit {
	if name, ok := wrapperTerm(f); ok {
		return t.atomVar(name)
	}
	switch f := f.(type) {
	case *logic.Atomic:
		return t.atomVar(f.String())
	case *logic.Connective:
		switch f.Op {
		case logic.OpNot:
			return t.lit(f.Operands[0]).Not()
		case logic.OpAnd:
			return t.c.Ands(t.lits(f.Operands)...)
		case logic.OpOr:
			return t.c.Ors(t.lits(f.Operands)...)
		case logic.OpImplies:
			return t.c.Or(t.lit(f.Operands[0]).Not(), t.lit(f.Operands[1]))
		case logic.OpIff:
			return t.c.Xor(t.lit(f.Operands[0]), t.lit(f.Operands[1])).Not()
		}
	}
	// Quantified formulas and anything else stay opaque.
	return t.atomVar(logic.Key(f))
}

func (t *circuitTranslator) lits(fs []logic.Formula) []z.Lit {
	out := make([]z.Lit, len(fs))
	for i, f := range fs {
		out[i] = t.lit(f)
	}
	return out
}
