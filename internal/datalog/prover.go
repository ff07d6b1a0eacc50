// Package datalog decides the Horn fragment by bottom-up evaluation: ground
// facts plus universally quantified implication rules run to fixpoint, and a
// goal is certified exactly when the fixpoint contains it. Inside the
// fragment the verdict is complete, so an underivable goal comes back
// UNKNOWN, never refuted.
package datalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"

	"dcec/internal/bridge"
	"dcec/internal/logic"
)

// Config bounds one evaluation run.
type Config struct {
	FactLimit int
	Timeout   time.Duration
	Logger    *zap.Logger
}

// DefaultConfig returns the evaluation bounds used when the caller does not
// set any.
func DefaultConfig() Config {
	return Config{
		FactLimit: 100000,
		Timeout:   30 * time.Second,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.FactLimit <= 0 {
		c.FactLimit = d.FactLimit
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Prover evaluates Horn problems on the Mangle engine.
type Prover struct {
	cfg Config
}

var _ bridge.Prover = (*Prover)(nil)

func New(cfg Config) *Prover {
	return &Prover{cfg: cfg.normalized()}
}

func (p *Prover) Name() string { return "datalog" }

// Available is always true: evaluation runs in process.
func (p *Prover) Available() bool { return true }

// Prove translates the axioms into a Datalog program, evaluates it to
// fixpoint, and checks whether the goal fact was derived. The generated
// program is returned as the raw output.
func (p *Prover) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) bridge.Result {
	if goal == nil {
		return bridge.Result{Status: bridge.StatusError, Err: fmt.Errorf("datalog: nil goal")}
	}
	start := time.Now()

	goalText, err := translateGoal(goal)
	if err != nil {
		return errResult(err, start)
	}
	src, err := translateProgram(axioms)
	if err != nil {
		return errResult(err, start)
	}

	store, err := p.eval(ctx, src)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return bridge.Result{Status: bridge.StatusTimeout, Output: src, Elapsed: time.Since(start), Err: err}
		}
		return errResult(err, start)
	}

	goalAtom, err := parse.Atom(goalText)
	if err != nil {
		return errResult(fmt.Errorf("parse goal %q: %w", goalText, err), start)
	}

	found := false
	scanErr := store.GetFacts(ast.NewQuery(goalAtom.Predicate), func(fact ast.Atom) error {
		if fact.String() == goalAtom.String() {
			found = true
		}
		return nil
	})
	if scanErr != nil {
		return errResult(scanErr, start)
	}

	res := bridge.Result{Output: src, Elapsed: time.Since(start)}
	if found {
		res.Status = bridge.StatusValid
		res.IsValid = true
	} else {
		res.Status = bridge.StatusUnknown
	}
	p.cfg.Logger.Debug("datalog verdict",
		zap.String("goal", goalText),
		zap.String("status", string(res.Status)),
		zap.Int("facts", store.EstimateFactCount()),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// CheckSat reports satisfiability inside the fragment. A negation-free Horn
// program always has a least model, so anything that translates is
// satisfiable; the method exists to keep the backend interchangeable.
func (p *Prover) CheckSat(ctx context.Context, f logic.Formula) bridge.Result {
	if f == nil {
		return bridge.Result{Status: bridge.StatusError, Err: fmt.Errorf("datalog: nil formula")}
	}
	start := time.Now()

	conjuncts := []logic.Formula{f}
	if c, ok := f.(*logic.Connective); ok && c.Op == logic.OpAnd {
		conjuncts = c.Operands
	}
	src, err := translateProgram(conjuncts)
	if err != nil {
		return errResult(err, start)
	}
	return bridge.Result{Status: bridge.StatusSatisfiable, Output: src, Elapsed: time.Since(start)}
}

// eval parses, analyzes and runs the program to fixpoint. Evaluation itself
// is not interruptible, so it runs on its own goroutine and the caller
// abandons it when the deadline fires.
func (p *Prover) eval(ctx context.Context, src string) (factstore.FactStore, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(src)))
	if err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze program: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	store := factstore.NewSimpleInMemoryStore()
	done := make(chan error, 1)
	go func() {
		stats, evalErr := mengine.EvalProgramWithStats(info, store)
		if evalErr == nil {
			p.cfg.Logger.Debug("datalog fixpoint", zap.Any("stats", stats))
		}
		done <- evalErr
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("evaluate program: %w", err)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if n := store.EstimateFactCount(); n > p.cfg.FactLimit {
		p.cfg.Logger.Warn("fact limit exceeded",
			zap.Int("facts", n),
			zap.Int("limit", p.cfg.FactLimit))
	}
	return store, nil
}

func errResult(err error, start time.Time) bridge.Result {
	return bridge.Result{Status: bridge.StatusError, Err: err, Elapsed: time.Since(start)}
}
