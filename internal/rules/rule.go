// Package rules implements the inference rule catalogue: propositional,
// modal, temporal, deontic, cognitive, resolution and specialized rules, all
// behind one uniform contract the proof strategies iterate over.
package rules

import (
	"fmt"

	"dcec/internal/logic"
)

// Rule is one inference rule. CanApply is a cheap structural precondition;
// Apply re-verifies the full match and silently returns no derivations when
// it does not hold, so strategies may call Apply without calling CanApply
// first. Apply never mutates its input.
type Rule interface {
	Name() string
	CanApply(fs []logic.Formula) bool
	Apply(fs []logic.Formula) ([]logic.Formula, error)
}

// ContradictionError reports that a rule detected two formulas that cannot
// hold together. It is a signal about the premise set, not a derivation
// failure; strategies log it and continue.
type ContradictionError struct {
	Rule string
	A, B logic.Formula
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("%s: contradiction between %s and %s", e.Rule, e.A, e.B)
}

// ======================== shared helpers ========================

// index keys formulas by canonical string. First occurrence wins.
func index(fs []logic.Formula) map[string]logic.Formula {
	idx := make(map[string]logic.Formula, len(fs))
	for _, f := range fs {
		k := logic.Key(f)
		if _, ok := idx[k]; !ok {
			idx[k] = f
		}
	}
	return idx
}

// asNot unwraps a top-level negation.
func asNot(f logic.Formula) (logic.Formula, bool) {
	c, ok := f.(*logic.Connective)
	if !ok || c.Op != logic.OpNot {
		return nil, false
	}
	return c.Operands[0], true
}

// negate strips a top-level negation or adds one.
func negate(f logic.Formula) logic.Formula {
	if inner, ok := asNot(f); ok {
		return inner
	}
	return logic.Not(f)
}

// asImplication unwraps p → q.
func asImplication(f logic.Formula) (p, q logic.Formula, ok bool) {
	c, isConn := f.(*logic.Connective)
	if !isConn || c.Op != logic.OpImplies {
		return nil, nil, false
	}
	return c.Operands[0], c.Operands[1], true
}

// asOp unwraps a connective of the given operator.
func asOp(f logic.Formula, op logic.ConnectiveOp) (*logic.Connective, bool) {
	c, ok := f.(*logic.Connective)
	if !ok || c.Op != op {
		return nil, false
	}
	return c, true
}

// hasOp reports whether any formula is a connective of the given operator.
func hasOp(fs []logic.Formula, op logic.ConnectiveOp) bool {
	for _, f := range fs {
		if _, ok := asOp(f, op); ok {
			return true
		}
	}
	return false
}

// sameAgent compares optional agent terms by canonical form.
func sameAgent(a, b logic.Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// joinOr rebuilds a disjunction from surviving literals. A single literal
// collapses to itself.
func joinOr(lits []logic.Formula) logic.Formula {
	if len(lits) == 1 {
		return lits[0]
	}
	return logic.Or(lits...)
}

// joinAnd rebuilds a conjunction from parts.
func joinAnd(parts []logic.Formula) logic.Formula {
	if len(parts) == 1 {
		return parts[0]
	}
	return logic.And(parts...)
}
