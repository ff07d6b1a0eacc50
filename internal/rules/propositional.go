package rules

import "dcec/internal/logic"

// PropositionalRules returns the propositional family.
func PropositionalRules() []Rule {
	return []Rule{
		ModusPonens{},
		Simplification{},
		Conjunction{},
		Weakening{},
		DeMorgan{},
		DoubleNegation{},
		DisjunctiveSyllogism{},
		Contraposition{},
		HypotheticalSyllogism{},
		ImplicationElimination{},
	}
}

// ModusPonens derives Q from P and P → Q.
type ModusPonens struct{}

func (ModusPonens) Name() string { return "modus_ponens" }

func (ModusPonens) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (ModusPonens) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		p, q, ok := asImplication(f)
		if !ok {
			continue
		}
		if _, present := idx[logic.Key(p)]; present {
			out = append(out, q)
		}
	}
	return out, nil
}

// Simplification derives each conjunct from a conjunction.
type Simplification struct{}

func (Simplification) Name() string { return "simplification" }

func (Simplification) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpAnd) }

func (Simplification) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asOp(f, logic.OpAnd); ok {
			out = append(out, c.Operands...)
		}
	}
	return out, nil
}

// Conjunction derives P ∧ Q for each unordered pair of known formulas.
type Conjunction struct{}

func (Conjunction) Name() string { return "conjunction" }

func (Conjunction) CanApply(fs []logic.Formula) bool { return len(fs) >= 2 }

func (Conjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for i := 0; i < len(fs); i++ {
		for j := i + 1; j < len(fs); j++ {
			out = append(out, logic.And(fs[i], fs[j]))
		}
	}
	return out, nil
}

// Weakening derives P ∨ Q for each unordered pair of known formulas.
type Weakening struct{}

func (Weakening) Name() string { return "weakening" }

func (Weakening) CanApply(fs []logic.Formula) bool { return len(fs) >= 2 }

func (Weakening) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for i := 0; i < len(fs); i++ {
		for j := i + 1; j < len(fs); j++ {
			out = append(out, logic.Or(fs[i], fs[j]))
		}
	}
	return out, nil
}

// DeMorgan rewrites negated conjunctions and disjunctions and their duals.
type DeMorgan struct{}

func (DeMorgan) Name() string { return "de_morgan" }

func (DeMorgan) CanApply(fs []logic.Formula) bool {
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if _, isAnd := asOp(inner, logic.OpAnd); isAnd {
				return true
			}
			if _, isOr := asOp(inner, logic.OpOr); isOr {
				return true
			}
		}
		if c, ok := f.(*logic.Connective); ok && (c.Op == logic.OpAnd || c.Op == logic.OpOr) && allNegated(c.Operands) {
			return true
		}
	}
	return false
}

func (DeMorgan) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if c, isAnd := asOp(inner, logic.OpAnd); isAnd {
				out = append(out, logic.Or(negateAll(c.Operands)...))
				continue
			}
			if c, isOr := asOp(inner, logic.OpOr); isOr {
				out = append(out, logic.And(negateAll(c.Operands)...))
				continue
			}
		}
		if c, ok := f.(*logic.Connective); ok && allNegated(c.Operands) {
			switch c.Op {
			case logic.OpAnd:
				out = append(out, logic.Not(logic.Or(stripAll(c.Operands)...)))
			case logic.OpOr:
				out = append(out, logic.Not(logic.And(stripAll(c.Operands)...)))
			}
		}
	}
	return out, nil
}

func allNegated(fs []logic.Formula) bool {
	if len(fs) < 2 {
		return false
	}
	for _, f := range fs {
		if _, ok := asNot(f); !ok {
			return false
		}
	}
	return true
}

func negateAll(fs []logic.Formula) []logic.Formula {
	out := make([]logic.Formula, len(fs))
	for i, f := range fs {
		out[i] = logic.Not(f)
	}
	return out
}

func stripAll(fs []logic.Formula) []logic.Formula {
	out := make([]logic.Formula, len(fs))
	for i, f := range fs {
		out[i], _ = asNot(f)
	}
	return out
}

// DoubleNegation derives P from ¬¬P.
type DoubleNegation struct{}

func (DoubleNegation) Name() string { return "double_negation" }

func (DoubleNegation) CanApply(fs []logic.Formula) bool {
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if _, ok := asNot(inner); ok {
				return true
			}
		}
	}
	return false
}

func (DoubleNegation) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if core, ok := asNot(inner); ok {
				out = append(out, core)
			}
		}
	}
	return out, nil
}

// DisjunctiveSyllogism eliminates a refuted disjunct: from P ∨ Q and ¬P
// derive Q.
type DisjunctiveSyllogism struct{}

func (DisjunctiveSyllogism) Name() string { return "disjunctive_syllogism" }

func (DisjunctiveSyllogism) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpOr) }

func (DisjunctiveSyllogism) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		c, ok := asOp(f, logic.OpOr)
		if !ok {
			continue
		}
		for i, lit := range c.Operands {
			if _, refuted := idx[logic.Key(negate(lit))]; !refuted {
				continue
			}
			rest := make([]logic.Formula, 0, len(c.Operands)-1)
			rest = append(rest, c.Operands[:i]...)
			rest = append(rest, c.Operands[i+1:]...)
			out = append(out, joinOr(rest))
		}
	}
	return out, nil
}

// Contraposition derives ¬Q → ¬P from P → Q.
type Contraposition struct{}

func (Contraposition) Name() string { return "contraposition" }

func (Contraposition) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (Contraposition) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if p, q, ok := asImplication(f); ok {
			out = append(out, logic.Implies(negate(q), negate(p)))
		}
	}
	return out, nil
}

// HypotheticalSyllogism chains implications: from P → Q and Q → R derive
// P → R.
type HypotheticalSyllogism struct{}

func (HypotheticalSyllogism) Name() string { return "hypothetical_syllogism" }

func (HypotheticalSyllogism) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (HypotheticalSyllogism) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		p, q, ok := asImplication(f)
		if !ok {
			continue
		}
		qKey := logic.Key(q)
		for _, g := range fs {
			q2, r, ok := asImplication(g)
			if !ok || logic.Key(q2) != qKey {
				continue
			}
			if logic.Key(p) == logic.Key(r) {
				continue // P → P adds nothing
			}
			out = append(out, logic.Implies(p, r))
		}
	}
	return out, nil
}

// ImplicationElimination rewrites P → Q as ¬P ∨ Q.
type ImplicationElimination struct{}

func (ImplicationElimination) Name() string { return "implication_elimination" }

func (ImplicationElimination) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (ImplicationElimination) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if p, q, ok := asImplication(f); ok {
			out = append(out, logic.Or(negate(p), q))
		}
	}
	return out, nil
}
