package proof

import (
	"context"
	"time"

	"dcec/internal/logic"
	"dcec/internal/rules"
)

// Bidirectional alternates a forward catalogue pass with a backward
// expansion of a goal set. The goal set holds formulas that reach the goal
// through implications already derived; the moment the derived set touches
// it, the connecting implication chain is discharged by modus ponens and the
// search succeeds.
type Bidirectional struct {
	engine
}

// NewBidirectional builds a meet-in-the-middle strategy over the given
// rules.
func NewBidirectional(ruleset []rules.Rule, opts Options) *Bidirectional {
	return &Bidirectional{engine: newEngine(ruleset, opts)}
}

func (s *Bidirectional) Name() string { return "bidirectional" }

// backNode links a goal-set member to the consequent it reaches and the
// implication step that justifies the link.
type backNode struct {
	f       logic.Formula
	viaImpl int
	parent  string
}

func (s *Bidirectional) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) *Tree {
	start := time.Now()
	tree := newTree(goal, axioms, s.Name())
	ws := newWorkspace(axioms, tree)
	goalKey := logic.Key(goal)

	if ws.has(goalKey) {
		return finish(tree, StatusProved, 0, start, nil)
	}

	back := map[string]backNode{goalKey: {f: goal}}
	fwdProgress := true

	for iter := 1; iter <= s.opts.MaxSteps; iter++ {
		if ctx.Err() != nil {
			return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
		}
		if iter%2 == 1 {
			added, proved, timedOut := s.step(ctx, ws, tree, goalKey)
			if timedOut {
				return finish(tree, StatusTimeout, iter-1, start, ctx.Err())
			}
			if proved {
				s.attributeProof(tree, ws)
				return finish(tree, StatusProved, iter, start, nil)
			}
			if hit, ok := meet(ws, back, goalKey); ok {
				discharge(ws, tree, back, hit, goalKey)
				s.attributeProof(tree, ws)
				return finish(tree, StatusProved, iter, start, nil)
			}
			fwdProgress = added > 0
			continue
		}
		grew := expandGoalSet(ws, back)
		if hit, ok := meet(ws, back, goalKey); ok {
			discharge(ws, tree, back, hit, goalKey)
			s.attributeProof(tree, ws)
			return finish(tree, StatusProved, iter, start, nil)
		}
		if !fwdProgress && !grew {
			// Neither side can move again; the remaining budget is
			// consumed without further passes.
			return finish(tree, StatusUnknown, s.opts.MaxSteps, start, nil)
		}
	}
	return finish(tree, StatusUnknown, s.opts.MaxSteps, start, nil)
}

// expandGoalSet adds the antecedent of every derived implication whose
// consequent is already in the goal set.
func expandGoalSet(ws *workspace, back map[string]backNode) bool {
	grew := false
	for _, ent := range ws.list {
		p, q, ok := asImplication(ent.f)
		if !ok {
			continue
		}
		qKey := logic.Key(q)
		if _, reaches := back[qKey]; !reaches {
			continue
		}
		pKey := logic.Key(p)
		if _, seen := back[pKey]; seen {
			continue
		}
		back[pKey] = backNode{f: p, viaImpl: ent.num, parent: qKey}
		grew = true
	}
	return grew
}

// meet finds a derived formula inside the goal set.
func meet(ws *workspace, back map[string]backNode, goalKey string) (string, bool) {
	for key := range back {
		if key == goalKey {
			continue
		}
		if ws.has(key) {
			return key, true
		}
	}
	return "", false
}

// discharge materializes the implication chain from the met formula up to
// the goal as explicit modus ponens steps.
func discharge(ws *workspace, tree *Tree, back map[string]backNode, hit, goalKey string) {
	cur := hit
	for cur != goalKey {
		node := back[cur]
		curNum, ok := ws.numberOf(cur)
		if !ok {
			return
		}
		parent := back[node.parent]
		num, isNew := ws.add(parent.f)
		if isNew {
			tree.Steps = append(tree.Steps, Step{
				Number:   num,
				Formula:  parent.f,
				Text:     logic.Key(parent.f),
				RuleName: "modus_ponens",
				Premises: []int{curNum, node.viaImpl},
			})
		}
		cur = node.parent
	}
}
