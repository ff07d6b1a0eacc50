package proof

import (
	"context"

	"dcec/internal/logic"
	"dcec/internal/rules"
)

// Premise-count thresholds for hybrid strategy selection.
const (
	hybridForwardBelow  = 5
	hybridBackwardAbove = 10
)

// Hybrid picks a direction per call from the premise count: forward below 5
// axioms, backward at 10 or more, bidirectional in between. Each call
// selects afresh, so one Hybrid value serves differently shaped problems.
type Hybrid struct {
	forward       *Forward
	backward      *Backward
	bidirectional *Bidirectional
}

// NewHybrid builds the adaptive strategy over the given rules.
func NewHybrid(ruleset []rules.Rule, opts Options) *Hybrid {
	return &Hybrid{
		forward:       NewForward(ruleset, opts),
		backward:      NewBackward(ruleset, opts),
		bidirectional: NewBidirectional(ruleset, opts),
	}
}

func (s *Hybrid) Name() string { return "hybrid" }

func (s *Hybrid) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula) *Tree {
	var picked Strategy
	switch n := len(axioms); {
	case n < hybridForwardBelow:
		picked = s.forward
	case n >= hybridBackwardAbove:
		picked = s.backward
	default:
		picked = s.bidirectional
	}
	tree := picked.Prove(ctx, goal, axioms)
	tree.Strategy = s.Name() + "/" + picked.Name()
	return tree
}

// ByName constructs a strategy from its name.
func ByName(name string, ruleset []rules.Rule, opts Options) (Strategy, bool) {
	switch name {
	case "forward":
		return NewForward(ruleset, opts), true
	case "backward":
		return NewBackward(ruleset, opts), true
	case "bidirectional":
		return NewBidirectional(ruleset, opts), true
	case "hybrid", "":
		return NewHybrid(ruleset, opts), true
	}
	return nil, false
}
