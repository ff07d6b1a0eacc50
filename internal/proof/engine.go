package proof

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dcec/internal/logic"
	"dcec/internal/rules"
)

// DefaultMaxSteps bounds saturation when the caller does not.
const DefaultMaxSteps = 100

// probeLimit caps how many earlier lines premise attribution will probe;
// steps preceded by more lines keep an empty premise list.
const probeLimit = 40

// Strategy is one way of driving the engine toward a goal. Prove always
// returns a terminal tree; errors surface in the tree's result.
type Strategy interface {
	Name() string
	Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) *Tree
}

// Options configure a strategy.
type Options struct {
	// MaxSteps bounds engine iterations; zero means DefaultMaxSteps.
	MaxSteps int
	Logger   *zap.Logger
}

func (o Options) normalized() Options {
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// engine is the saturation core shared by all strategies: one iteration
// applies every rule to a snapshot of the derived set and merges anything
// new. Rules see the frontier as of the iteration start, so a conclusion
// never feeds a rule within the iteration that produced it.
type engine struct {
	rules []rules.Rule
	opts  Options
}

func newEngine(ruleset []rules.Rule, opts Options) engine {
	return engine{rules: ruleset, opts: opts.normalized()}
}

type entry struct {
	num int
	f   logic.Formula
}

// workspace is the derived set, keyed by canonical formula strings.
type workspace struct {
	list  []entry
	byKey map[string]int
}

func newWorkspace(axioms []logic.Formula, tree *Tree) *workspace {
	ws := &workspace{byKey: make(map[string]int, len(axioms))}
	for _, ax := range axioms {
		num, added := ws.add(ax)
		if added {
			tree.Steps = append(tree.Steps, Step{
				Number:   num,
				Formula:  ax,
				Text:     logic.Key(ax),
				RuleName: "axiom",
			})
		}
	}
	return ws
}

func (w *workspace) has(key string) bool {
	_, ok := w.byKey[key]
	return ok
}

func (w *workspace) numberOf(key string) (int, bool) {
	n, ok := w.byKey[key]
	return n, ok
}

func (w *workspace) add(f logic.Formula) (int, bool) {
	key := logic.Key(f)
	if num, ok := w.byKey[key]; ok {
		return num, false
	}
	num := len(w.list) + 1
	w.list = append(w.list, entry{num: num, f: f})
	w.byKey[key] = num
	return num, true
}

// snapshot copies the current formulas for one iteration's rule input.
func (w *workspace) snapshot() []logic.Formula {
	fs := make([]logic.Formula, len(w.list))
	for i, e := range w.list {
		fs[i] = e.f
	}
	return fs
}

// applyRule runs one rule with panic recovery. A rule that does not match
// returns no output and no error.
func applyRule(r rules.Rule, fs []logic.Formula) (out []logic.Formula, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("rule %s panicked: %v", r.Name(), rec)
		}
	}()
	if !r.CanApply(fs) {
		return nil, nil
	}
	return r.Apply(fs)
}

// step runs one full catalogue pass. It reports how many new formulas were
// merged, whether the goal was among them, and whether the context expired
// mid-pass. Rule errors are logged and skipped; a contradiction in the
// premise set is a warning, not a failure.
func (e *engine) step(ctx context.Context, ws *workspace, tree *Tree, goalKey string) (added int, proved, timedOut bool) {
	snap := ws.snapshot()

	for _, r := range e.rules {
		if ctx.Err() != nil {
			return added, false, true
		}
		out, err := applyRule(r, snap)
		if err != nil {
			var cerr *rules.ContradictionError
			if errors.As(err, &cerr) {
				e.opts.Logger.Warn("contradiction in premise set",
					zap.String("rule", r.Name()),
					zap.String("a", cerr.A.String()),
					zap.String("b", cerr.B.String()))
			} else {
				e.opts.Logger.Error("rule application failed",
					zap.String("rule", r.Name()),
					zap.Error(err))
			}
			continue
		}
		for _, f := range out {
			num, isNew := ws.add(f)
			if !isNew {
				continue
			}
			added++
			tree.Steps = append(tree.Steps, Step{
				Number:   num,
				Formula:  f,
				Text:     logic.Key(f),
				RuleName: r.Name(),
			})
			if logic.Key(f) == goalKey {
				proved = true
			}
		}
	}
	return added, proved, false
}

// attributeProof fills in premise numbers along the goal's derivation path.
// Attribution is done only after a successful search: each step on the path
// is probed against earlier lines for a minimal premise subset (singles,
// pairs, then triples) that reproduces it. Steps whose line precedes too
// many others are left unattributed.
func (e *engine) attributeProof(tree *Tree, ws *workspace) {
	byName := make(map[string]rules.Rule, len(e.rules))
	for _, r := range e.rules {
		byName[r.Name()] = r
	}
	stepIdx := make(map[int]int, len(tree.Steps))
	for i, s := range tree.Steps {
		stepIdx[s.Number] = i
	}
	goal, ok := tree.GoalStep()
	if !ok {
		return
	}

	queue := []int{goal.Number}
	seen := map[int]bool{goal.Number: true}
	for len(queue) > 0 {
		num := queue[0]
		queue = queue[1:]
		i, ok := stepIdx[num]
		if !ok {
			continue
		}
		s := &tree.Steps[i]
		if s.RuleName != "axiom" && len(s.Premises) == 0 {
			if r, known := byName[s.RuleName]; known {
				s.Premises = attribute(r, ws.list[:s.Number-1], s.Text)
			}
		}
		for _, p := range s.Premises {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
}

// attribute probes earlier lines for a minimal subset from which the rule
// rederives the target formula.
func attribute(r rules.Rule, pool []entry, targetKey string) []int {
	if len(pool) > probeLimit {
		return nil
	}
	yields := func(fs []logic.Formula) bool {
		out, err := applyRule(r, fs)
		if err != nil {
			return false
		}
		for _, f := range out {
			if logic.Key(f) == targetKey {
				return true
			}
		}
		return false
	}
	for _, p := range pool {
		if yields([]logic.Formula{p.f}) {
			return []int{p.num}
		}
	}
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			if yields([]logic.Formula{pool[i].f, pool[j].f}) {
				return []int{pool[i].num, pool[j].num}
			}
		}
	}
	if len(pool) > probeLimit/2 {
		return nil
	}
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			for k := j + 1; k < len(pool); k++ {
				if yields([]logic.Formula{pool[i].f, pool[j].f, pool[k].f}) {
					return []int{pool[i].num, pool[j].num, pool[k].num}
				}
			}
		}
	}
	return nil
}

func newTree(goal logic.Formula, axioms []logic.Formula, strategy string) *Tree {
	return &Tree{
		Goal:     goal,
		Axioms:   axioms,
		Strategy: strategy,
		Result:   Result{Status: StatusSearching},
	}
}

func finish(tree *Tree, status Status, steps int, start time.Time, err error) *Tree {
	tree.Result = Result{
		Status:     status,
		StepsTaken: steps,
		Duration:   time.Since(start),
		Err:        err,
	}
	return tree
}
