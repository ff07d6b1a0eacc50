package proof

import (
	"context"
	"time"

	"dcec/internal/logic"
	"dcec/internal/rules"
)

// Backward works a FIFO queue of subgoals, seeded with the goal. Each
// iteration pops one subgoal, enqueues the antecedents of implications that
// conclude it, and runs one catalogue pass. An undischarged subgoal is
// requeued only while passes keep making progress, so a stalled search
// drains its queue and terminates.
type Backward struct {
	engine
}

// NewBackward builds a backward-chaining strategy over the given rules.
func NewBackward(ruleset []rules.Rule, opts Options) *Backward {
	return &Backward{engine: newEngine(ruleset, opts)}
}

func (s *Backward) Name() string { return "backward" }

func (s *Backward) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) *Tree {
	start := time.Now()
	tree := newTree(goal, axioms, s.Name())
	ws := newWorkspace(axioms, tree)
	goalKey := logic.Key(goal)

	if ws.has(goalKey) {
		return finish(tree, StatusProved, 0, start, nil)
	}

	queue := []logic.Formula{goal}
	enqueued := map[string]bool{goalKey: true}

	iter := 0
	for len(queue) > 0 && iter < s.opts.MaxSteps {
		iter++
		if ctx.Err() != nil {
			return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
		}
		sub := queue[0]
		queue = queue[1:]
		subKey := logic.Key(sub)

		// Decompose: any implication concluding the subgoal makes its
		// antecedent a new subgoal.
		for _, ent := range ws.list {
			p, q, ok := asImplication(ent.f)
			if !ok || logic.Key(q) != subKey {
				continue
			}
			if pk := logic.Key(p); !enqueued[pk] {
				enqueued[pk] = true
				queue = append(queue, p)
			}
		}

		added, proved, timedOut := s.step(ctx, ws, tree, goalKey)
		if timedOut {
			return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
		}
		if proved {
			s.attributeProof(tree, ws)
			return finish(tree, StatusProved, iter, start, nil)
		}
		if !ws.has(subKey) && added > 0 {
			queue = append(queue, sub)
		}
	}
	return finish(tree, StatusUnknown, iter, start, nil)
}

func asImplication(f logic.Formula) (p, q logic.Formula, ok bool) {
	c, isConn := f.(*logic.Connective)
	if !isConn || c.Op != logic.OpImplies {
		return nil, nil, false
	}
	return c.Operands[0], c.Operands[1], true
}
