package proof

import (
	"context"
	"time"

	"dcec/internal/logic"
	"dcec/internal/rules"
)

// Forward saturates from the axioms until the goal appears, the step budget
// is exhausted, or the context expires. An unreached goal always reports the
// full budget as consumed.
type Forward struct {
	engine
}

// NewForward builds a forward-chaining strategy over the given rules.
func NewForward(ruleset []rules.Rule, opts Options) *Forward {
	return &Forward{engine: newEngine(ruleset, opts)}
}

func (s *Forward) Name() string { return "forward" }

func (s *Forward) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) *Tree {
	start := time.Now()
	tree := newTree(goal, axioms, s.Name())
	ws := newWorkspace(axioms, tree)
	goalKey := logic.Key(goal)

	if ws.has(goalKey) {
		return finish(tree, StatusProved, 0, start, nil)
	}

	for iter := 1; iter <= s.opts.MaxSteps; iter++ {
		if ctx.Err() != nil {
			return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
		}
		added, proved, timedOut := s.step(ctx, ws, tree, goalKey)
		if timedOut {
			return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
		}
		if proved {
			s.attributeProof(tree, ws)
			return finish(tree, StatusProved, iter, start, nil)
		}
		if added == 0 {
			// A pass that adds nothing leaves the set unchanged, so no
			// later pass can add anything either. The remaining budget is
			// consumed without re-running the rules.
			return finish(tree, StatusUnknown, s.opts.MaxSteps, start, nil)
		}
	}
	return finish(tree, StatusUnknown, s.opts.MaxSteps, start, nil)
}
