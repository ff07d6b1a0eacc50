package proof

import (
	"encoding/json"
	"fmt"
	"strings"
)

const renderDepthLimit = 12

// RenderASCII renders the search outcome and, when the goal was reached, its
// derivation as an ASCII tree rooted at the goal with premises as children.
func (t *Tree) RenderASCII() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Goal: %s\n", t.Goal))
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", t.Strategy))
	sb.WriteString(fmt.Sprintf("Status: %s (steps: %d, duration: %v)\n",
		t.Result.Status, t.Result.StepsTaken, t.Result.Duration))
	sb.WriteString(fmt.Sprintf("Derived: %d formulas from %d axioms\n",
		len(t.Steps)-len(t.Axioms), len(t.Axioms)))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	goal, ok := t.GoalStep()
	if !ok {
		if t.Result.Err != nil {
			sb.WriteString(fmt.Sprintf("error: %v\n", t.Result.Err))
		}
		return sb.String()
	}

	sb.WriteString("\nDerivation:\n")
	t.renderStepASCII(&sb, goal, "", true, 0)
	return sb.String()
}

func (t *Tree) renderStepASCII(sb *strings.Builder, s Step, prefix string, isLast bool, depth int) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	indicator := "[axiom]"
	if s.RuleName != "axiom" {
		indicator = fmt.Sprintf("[%s]", s.RuleName)
	}
	sb.WriteString(fmt.Sprintf("%s%s%d. %s %s\n", prefix, connector, s.Number, s.Text, indicator))

	if depth >= renderDepthLimit {
		return
	}

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}

	for i, num := range s.Premises {
		child, ok := t.stepByNumber(num)
		if !ok {
			continue
		}
		t.renderStepASCII(sb, child, childPrefix, i == len(s.Premises)-1, depth+1)
	}
}

func (t *Tree) stepByNumber(n int) (Step, bool) {
	for _, s := range t.Steps {
		if s.Number == n {
			return s, true
		}
	}
	return Step{}, false
}

// RenderJSON renders the full search record: the outcome, every numbered
// step, and the goal's nested derivation.
func (t *Tree) RenderJSON() ([]byte, error) {
	type jsonNode struct {
		Number   int         `json:"number"`
		Formula  string      `json:"formula"`
		Rule     string      `json:"rule"`
		Children []*jsonNode `json:"children,omitempty"`
	}

	var convert func(s Step, depth int) *jsonNode
	convert = func(s Step, depth int) *jsonNode {
		node := &jsonNode{Number: s.Number, Formula: s.Text, Rule: s.RuleName}
		if depth >= renderDepthLimit {
			return node
		}
		for _, num := range s.Premises {
			if child, ok := t.stepByNumber(num); ok {
				node.Children = append(node.Children, convert(child, depth+1))
			}
		}
		return node
	}

	payload := struct {
		Goal       string    `json:"goal"`
		Strategy   string    `json:"strategy"`
		Status     Status    `json:"status"`
		StepsTaken int       `json:"steps_taken"`
		Duration   string    `json:"duration"`
		Error      string    `json:"error,omitempty"`
		Steps      []Step    `json:"steps"`
		Derivation *jsonNode `json:"derivation,omitempty"`
	}{
		Goal:       t.Goal.String(),
		Strategy:   t.Strategy,
		Status:     t.Result.Status,
		StepsTaken: t.Result.StepsTaken,
		Duration:   t.Result.Duration.String(),
		Steps:      t.Steps,
	}
	if t.Result.Err != nil {
		payload.Error = t.Result.Err.Error()
	}
	if goal, ok := t.GoalStep(); ok {
		payload.Derivation = convert(goal, 0)
	}
	return json.MarshalIndent(payload, "", "  ")
}
