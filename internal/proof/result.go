// Package proof implements the native proof search: a saturation engine over
// the rule catalogue and the forward, backward, bidirectional and hybrid
// strategies driving it.
package proof

import (
	"time"

	"dcec/internal/logic"
)

// Status is the terminal state of a proof search.
type Status string

const (
	StatusSearching Status = "SEARCHING"
	StatusProved    Status = "PROVED"
	StatusTimeout   Status = "TIMEOUT"
	StatusUnknown   Status = "UNKNOWN"
	StatusError     Status = "ERROR"
)

// Step is one numbered line of a completed search. Axioms occupy numbers
// 1..len(axioms); derived steps continue from there. Premises lists the line
// numbers the rule consumed when the engine could attribute them.
type Step struct {
	Number   int           `json:"number"`
	Formula  logic.Formula `json:"-"`
	Text     string        `json:"formula"`
	RuleName string        `json:"rule"`
	Premises []int         `json:"premises,omitempty"`
}

// Result summarizes one search.
type Result struct {
	Status     Status        `json:"status"`
	StepsTaken int           `json:"steps_taken"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// Proved reports whether the goal was established.
func (r Result) Proved() bool { return r.Status == StatusProved }

// Tree is the full record of one search: the goal, the premises it started
// from, every line derived on the way, and the outcome. StepsTaken counts
// engine iterations, not derived formulas; a goal that already appears among
// the axioms takes zero steps.
type Tree struct {
	Goal     logic.Formula
	Axioms   []logic.Formula
	Steps    []Step
	Strategy string
	Result   Result
}

// GoalStep returns the derived step establishing the goal, if any.
func (t *Tree) GoalStep() (Step, bool) {
	key := logic.Key(t.Goal)
	for _, s := range t.Steps {
		if s.Text == key {
			return s, true
		}
	}
	return Step{}, false
}
