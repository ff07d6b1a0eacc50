package rules

import "dcec/internal/logic"

// DeonticRules returns the normative family. Agent-indexed norms only
// interact when their agents match.
func DeonticRules() []Rule {
	return []Rule{
		ObligationDistribution{},
		ObligationImplication{},
		ObligationConjunction{},
		PermissionFromNonObligation{},
		PermissionDistribution{},
		ObligationConsistency{},
		ProhibitionEquivalence{},
	}
}

func asDeontic(f logic.Formula, op logic.DeonticOp) (*logic.Deontic, bool) {
	d, ok := f.(*logic.Deontic)
	if !ok || d.Op != op {
		return nil, false
	}
	return d, true
}

func hasDeontic(fs []logic.Formula, op logic.DeonticOp) bool {
	for _, f := range fs {
		if _, ok := asDeontic(f, op); ok {
			return true
		}
	}
	return false
}

func deontic(op logic.DeonticOp, agent logic.Term, body logic.Formula) logic.Formula {
	return &logic.Deontic{Op: op, Agent: agent, Body: body}
}

// ObligationDistribution distributes obligation over conjunction: from
// O(P ∧ Q) derive O(P) ∧ O(Q).
type ObligationDistribution struct{}

func (ObligationDistribution) Name() string { return "obligation_distribution" }

func (ObligationDistribution) CanApply(fs []logic.Formula) bool {
	return hasDeontic(fs, logic.Obligation)
}

func (ObligationDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		d, ok := asDeontic(f, logic.Obligation)
		if !ok {
			continue
		}
		if c, isAnd := asOp(d.Body, logic.OpAnd); isAnd {
			parts := make([]logic.Formula, len(c.Operands))
			for i, part := range c.Operands {
				parts[i] = deontic(logic.Obligation, d.Agent, part)
			}
			out = append(out, logic.And(parts...))
		}
	}
	return out, nil
}

// ObligationImplication derives O(P) → O(Q) from O(P → Q).
type ObligationImplication struct{}

func (ObligationImplication) Name() string { return "obligation_implication" }

func (ObligationImplication) CanApply(fs []logic.Formula) bool {
	return hasDeontic(fs, logic.Obligation)
}

func (ObligationImplication) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		d, ok := asDeontic(f, logic.Obligation)
		if !ok {
			continue
		}
		if p, q, isImpl := asImplication(d.Body); isImpl {
			out = append(out, logic.Implies(deontic(logic.Obligation, d.Agent, p), deontic(logic.Obligation, d.Agent, q)))
		}
	}
	return out, nil
}

// ObligationConjunction aggregates obligations of one agent: from O(P) and
// O(Q) derive O(P ∧ Q).
type ObligationConjunction struct{}

func (ObligationConjunction) Name() string { return "obligation_conjunction" }

func (ObligationConjunction) CanApply(fs []logic.Formula) bool {
	n := 0
	for _, f := range fs {
		if _, ok := asDeontic(f, logic.Obligation); ok {
			n++
			if n == 2 {
				return true
			}
		}
	}
	return false
}

func (ObligationConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var obs []*logic.Deontic
	for _, f := range fs {
		if d, ok := asDeontic(f, logic.Obligation); ok {
			obs = append(obs, d)
		}
	}
	var out []logic.Formula
	for i := 0; i < len(obs); i++ {
		for j := i + 1; j < len(obs); j++ {
			if !sameAgent(obs[i].Agent, obs[j].Agent) {
				continue
			}
			out = append(out, deontic(logic.Obligation, obs[i].Agent, logic.And(obs[i].Body, obs[j].Body)))
		}
	}
	return out, nil
}

// PermissionFromNonObligation is the deontic duality: from ¬O(¬P) derive
// P(P).
type PermissionFromNonObligation struct{}

func (PermissionFromNonObligation) Name() string { return "permission_from_non_obligation" }

func (PermissionFromNonObligation) CanApply(fs []logic.Formula) bool {
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if _, isOb := asDeontic(inner, logic.Obligation); isOb {
				return true
			}
		}
	}
	return false
}

func (PermissionFromNonObligation) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		inner, ok := asNot(f)
		if !ok {
			continue
		}
		d, ok := asDeontic(inner, logic.Obligation)
		if !ok {
			continue
		}
		if core, negatedBody := asNot(d.Body); negatedBody {
			out = append(out, deontic(logic.Permission, d.Agent, core))
		}
	}
	return out, nil
}

// PermissionDistribution distributes permission over disjunction: from
// P(P ∨ Q) derive P(P) ∨ P(Q).
type PermissionDistribution struct{}

func (PermissionDistribution) Name() string { return "permission_distribution" }

func (PermissionDistribution) CanApply(fs []logic.Formula) bool {
	return hasDeontic(fs, logic.Permission)
}

func (PermissionDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		d, ok := asDeontic(f, logic.Permission)
		if !ok {
			continue
		}
		if c, isOr := asOp(d.Body, logic.OpOr); isOr {
			parts := make([]logic.Formula, len(c.Operands))
			for i, part := range c.Operands {
				parts[i] = deontic(logic.Permission, d.Agent, part)
			}
			out = append(out, logic.Or(parts...))
		}
	}
	return out, nil
}

// ObligationConsistency detects conflicting norms for one agent: O(P)
// against O(¬P), or O(P) against F(P). The conflict is reported as a
// ContradictionError, not a derivation.
type ObligationConsistency struct{}

func (ObligationConsistency) Name() string { return "obligation_consistency" }

func (ObligationConsistency) CanApply(fs []logic.Formula) bool {
	return hasDeontic(fs, logic.Obligation)
}

func (ObligationConsistency) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var obs []*logic.Deontic
	byKey := map[string]logic.Formula{}
	for _, f := range fs {
		if d, ok := f.(*logic.Deontic); ok {
			if d.Op == logic.Obligation {
				obs = append(obs, d)
			}
			byKey[logic.Key(d)] = d
		}
	}
	for _, d := range obs {
		counter := deontic(logic.Obligation, d.Agent, negate(d.Body))
		if other, ok := byKey[logic.Key(counter)]; ok {
			return nil, &ContradictionError{Rule: "obligation_consistency", A: d, B: other}
		}
		forbidden := deontic(logic.Prohibition, d.Agent, d.Body)
		if other, ok := byKey[logic.Key(forbidden)]; ok {
			return nil, &ContradictionError{Rule: "obligation_consistency", A: d, B: other}
		}
	}
	return nil, nil
}

// ProhibitionEquivalence rewrites prohibition as obligation of the negation
// and back: F(P) yields O(¬P), and O(¬P) yields F(P).
type ProhibitionEquivalence struct{}

func (ProhibitionEquivalence) Name() string { return "prohibition_equivalence" }

func (ProhibitionEquivalence) CanApply(fs []logic.Formula) bool {
	if hasDeontic(fs, logic.Prohibition) {
		return true
	}
	for _, f := range fs {
		if d, ok := asDeontic(f, logic.Obligation); ok {
			if _, negated := asNot(d.Body); negated {
				return true
			}
		}
	}
	return false
}

func (ProhibitionEquivalence) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if d, ok := asDeontic(f, logic.Prohibition); ok {
			out = append(out, deontic(logic.Obligation, d.Agent, negate(d.Body)))
			continue
		}
		if d, ok := asDeontic(f, logic.Obligation); ok {
			if core, negated := asNot(d.Body); negated {
				out = append(out, deontic(logic.Prohibition, d.Agent, core))
			}
		}
	}
	return out, nil
}
