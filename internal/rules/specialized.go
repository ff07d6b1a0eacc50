package rules

import "dcec/internal/logic"

// SpecializedRules returns the structural utility family.
func SpecializedRules() []Rule {
	return []Rule{
		BiconditionalIntroduction{},
		BiconditionalElimination{},
		ConstructiveDilemma{},
		DestructiveDilemma{},
		Exportation{},
		Absorption{},
		Addition{},
		Tautology{},
		Commutativity{},
	}
}

// BiconditionalIntroduction derives P ↔ Q from P → Q and Q → P.
type BiconditionalIntroduction struct{}

func (BiconditionalIntroduction) Name() string { return "biconditional_introduction" }

func (BiconditionalIntroduction) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpImplies)
}

func (BiconditionalIntroduction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		p, q, ok := asImplication(f)
		if !ok {
			continue
		}
		if logic.Key(p) == logic.Key(q) {
			continue
		}
		if _, present := idx[logic.Key(logic.Implies(q, p))]; present {
			out = append(out, logic.Iff(p, q))
		}
	}
	return out, nil
}

// BiconditionalElimination derives both implications from P ↔ Q.
type BiconditionalElimination struct{}

func (BiconditionalElimination) Name() string { return "biconditional_elimination" }

func (BiconditionalElimination) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpIff) }

func (BiconditionalElimination) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asOp(f, logic.OpIff); ok {
			out = append(out, logic.Implies(c.Operands[0], c.Operands[1]))
			out = append(out, logic.Implies(c.Operands[1], c.Operands[0]))
		}
	}
	return out, nil
}

// ConstructiveDilemma derives Q ∨ S from P → Q, R → S and P ∨ R.
type ConstructiveDilemma struct{}

func (ConstructiveDilemma) Name() string { return "constructive_dilemma" }

func (ConstructiveDilemma) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpImplies) && hasOp(fs, logic.OpOr)
}

func (ConstructiveDilemma) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	// implications keyed by antecedent
	byAntecedent := map[string][]logic.Formula{}
	for _, f := range fs {
		if p, q, ok := asImplication(f); ok {
			byAntecedent[logic.Key(p)] = append(byAntecedent[logic.Key(p)], q)
		}
	}
	var out []logic.Formula
	for _, f := range fs {
		c, isOr := asOp(f, logic.OpOr)
		if !isOr || len(c.Operands) != 2 {
			continue
		}
		for _, q := range byAntecedent[logic.Key(c.Operands[0])] {
			for _, s := range byAntecedent[logic.Key(c.Operands[1])] {
				out = append(out, logic.Or(q, s))
			}
		}
	}
	return out, nil
}

// DestructiveDilemma derives ¬P ∨ ¬R from P → Q, R → S and ¬Q ∨ ¬S.
type DestructiveDilemma struct{}

func (DestructiveDilemma) Name() string { return "destructive_dilemma" }

func (DestructiveDilemma) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpImplies) && hasOp(fs, logic.OpOr)
}

func (DestructiveDilemma) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	// implications keyed by negated consequent
	byNegConsequent := map[string][]logic.Formula{}
	for _, f := range fs {
		if p, q, ok := asImplication(f); ok {
			key := logic.Key(negate(q))
			byNegConsequent[key] = append(byNegConsequent[key], p)
		}
	}
	var out []logic.Formula
	for _, f := range fs {
		c, isOr := asOp(f, logic.OpOr)
		if !isOr || len(c.Operands) != 2 {
			continue
		}
		for _, p := range byNegConsequent[logic.Key(c.Operands[0])] {
			for _, r := range byNegConsequent[logic.Key(c.Operands[1])] {
				out = append(out, logic.Or(negate(p), negate(r)))
			}
		}
	}
	return out, nil
}

// Exportation converts between (P ∧ Q) → R and P → (Q → R), both ways.
type Exportation struct{}

func (Exportation) Name() string { return "exportation" }

func (Exportation) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (Exportation) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		p, q, ok := asImplication(f)
		if !ok {
			continue
		}
		if c, isAnd := asOp(p, logic.OpAnd); isAnd && len(c.Operands) == 2 {
			out = append(out, logic.Implies(c.Operands[0], logic.Implies(c.Operands[1], q)))
		}
		if inner, innerQ, nested := asImplication(q); nested {
			out = append(out, logic.Implies(logic.And(p, inner), innerQ))
		}
	}
	return out, nil
}

// Absorption derives P → (P ∧ Q) from P → Q.
type Absorption struct{}

func (Absorption) Name() string { return "absorption" }

func (Absorption) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpImplies) }

func (Absorption) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if p, q, ok := asImplication(f); ok {
			out = append(out, logic.Implies(p, logic.And(p, q)))
		}
	}
	return out, nil
}

// Addition derives P ∨ Q for every ordered pair of known formulas.
type Addition struct{}

func (Addition) Name() string { return "addition" }

func (Addition) CanApply(fs []logic.Formula) bool { return len(fs) >= 2 }

func (Addition) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for i := range fs {
		for j := range fs {
			if i == j {
				continue
			}
			out = append(out, logic.Or(fs[i], fs[j]))
		}
	}
	return out, nil
}

// Tautology collapses a connective whose operands are all the same formula:
// P ∨ P and P ∧ P both yield P.
type Tautology struct{}

func (Tautology) Name() string { return "tautology" }

func (Tautology) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpOr) || hasOp(fs, logic.OpAnd)
}

func (Tautology) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		c, ok := f.(*logic.Connective)
		if !ok || (c.Op != logic.OpAnd && c.Op != logic.OpOr) {
			continue
		}
		first := logic.Key(c.Operands[0])
		same := true
		for _, o := range c.Operands[1:] {
			if logic.Key(o) != first {
				same = false
				break
			}
		}
		if same {
			out = append(out, c.Operands[0])
		}
	}
	return out, nil
}

// Commutativity reverses the operand order of conjunctions and disjunctions.
type Commutativity struct{}

func (Commutativity) Name() string { return "commutativity" }

func (Commutativity) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpOr) || hasOp(fs, logic.OpAnd)
}

func (Commutativity) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		c, ok := f.(*logic.Connective)
		if !ok || (c.Op != logic.OpAnd && c.Op != logic.OpOr) {
			continue
		}
		rev := make([]logic.Formula, len(c.Operands))
		for i, o := range c.Operands {
			rev[len(c.Operands)-1-i] = o
		}
		out = append(out, &logic.Connective{Op: c.Op, Operands: rev})
	}
	return out, nil
}
