package rules

import "dcec/internal/logic"

// ResolutionRules returns the clause-oriented family. A clause is a
// disjunction of literals; any formula that is not a disjunction counts as a
// unit clause.
func ResolutionRules() []Rule {
	return []Rule{
		Resolution{},
		UnitResolution{},
		Factoring{},
		Subsumption{},
		CaseAnalysis{},
		ProofByContradiction{},
	}
}

// clauseOf views a formula as a clause: the operands of a disjunction, or
// the formula itself as a single literal.
func clauseOf(f logic.Formula) []logic.Formula {
	if c, ok := asOp(f, logic.OpOr); ok {
		return c.Operands
	}
	return []logic.Formula{f}
}

// resolve eliminates one complementary literal pair between two clauses and
// returns the resolvent literals, deduplicated, or false when the clauses do
// not resolve.
func resolve(a, b []logic.Formula) ([]logic.Formula, bool) {
	for i, la := range a {
		compl := logic.Key(negate(la))
		for j, lb := range b {
			if logic.Key(lb) != compl {
				continue
			}
			seen := map[string]bool{}
			var rest []logic.Formula
			for k, l := range a {
				if k == i {
					continue
				}
				if key := logic.Key(l); !seen[key] {
					seen[key] = true
					rest = append(rest, l)
				}
			}
			for k, l := range b {
				if k == j {
					continue
				}
				if key := logic.Key(l); !seen[key] {
					seen[key] = true
					rest = append(rest, l)
				}
			}
			return rest, true
		}
	}
	return nil, false
}

// Resolution resolves clause pairs on one complementary literal: from P ∨ Q
// and ¬P ∨ R derive Q ∨ R. Empty resolvents are discarded.
type Resolution struct{}

func (Resolution) Name() string { return "resolution" }

func (Resolution) CanApply(fs []logic.Formula) bool { return len(fs) >= 2 }

func (Resolution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for i := 0; i < len(fs); i++ {
		for j := i + 1; j < len(fs); j++ {
			rest, ok := resolve(clauseOf(fs[i]), clauseOf(fs[j]))
			if !ok || len(rest) == 0 {
				continue
			}
			out = append(out, joinOr(rest))
		}
	}
	return out, nil
}

// UnitResolution resolves a unit clause against a longer clause: from P and
// ¬P ∨ R derive R.
type UnitResolution struct{}

func (UnitResolution) Name() string { return "unit_resolution" }

func (UnitResolution) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpOr) }

func (UnitResolution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, unit := range fs {
		if _, isOr := asOp(unit, logic.OpOr); isOr {
			continue
		}
		compl := logic.Key(negate(unit))
		for _, f := range fs {
			c, isOr := asOp(f, logic.OpOr)
			if !isOr {
				continue
			}
			for i, lit := range c.Operands {
				if logic.Key(lit) != compl {
					continue
				}
				rest := make([]logic.Formula, 0, len(c.Operands)-1)
				rest = append(rest, c.Operands[:i]...)
				rest = append(rest, c.Operands[i+1:]...)
				out = append(out, joinOr(rest))
			}
		}
	}
	return out, nil
}

// Factoring removes duplicate literals from a clause: from P ∨ P ∨ Q derive
// P ∨ Q.
type Factoring struct{}

func (Factoring) Name() string { return "factoring" }

func (Factoring) CanApply(fs []logic.Formula) bool { return hasOp(fs, logic.OpOr) }

func (Factoring) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		c, isOr := asOp(f, logic.OpOr)
		if !isOr {
			continue
		}
		seen := map[string]bool{}
		var lits []logic.Formula
		for _, l := range c.Operands {
			if key := logic.Key(l); !seen[key] {
				seen[key] = true
				lits = append(lits, l)
			}
		}
		if len(lits) < len(c.Operands) {
			out = append(out, joinOr(lits))
		}
	}
	return out, nil
}

// Subsumption recognizes clauses made redundant by a strictly smaller
// clause. Derivation here is monotone, so the redundant clause is reported
// through Redundant rather than removed; Apply derives nothing.
type Subsumption struct{}

func (Subsumption) Name() string { return "subsumption" }

func (s Subsumption) CanApply(fs []logic.Formula) bool { return len(s.Redundant(fs)) > 0 }

func (Subsumption) Apply(fs []logic.Formula) ([]logic.Formula, error) { return nil, nil }

// Redundant lists every clause whose literal set strictly contains another
// clause's.
func (Subsumption) Redundant(fs []logic.Formula) []logic.Formula {
	sets := make([]map[string]bool, len(fs))
	for i, f := range fs {
		sets[i] = map[string]bool{}
		for _, l := range clauseOf(f) {
			sets[i][logic.Key(l)] = true
		}
	}
	var out []logic.Formula
	for i := range fs {
		for j := range fs {
			if i == j || len(sets[j]) >= len(sets[i]) {
				continue
			}
			subset := true
			for key := range sets[j] {
				if !sets[i][key] {
					subset = false
					break
				}
			}
			if subset {
				out = append(out, fs[i])
				break
			}
		}
	}
	return out
}

// CaseAnalysis discharges a disjunction whose cases share a consequence:
// from P ∨ Q, P → R and Q → R derive R.
type CaseAnalysis struct{}

func (CaseAnalysis) Name() string { return "case_analysis" }

func (CaseAnalysis) CanApply(fs []logic.Formula) bool {
	return hasOp(fs, logic.OpOr) && hasOp(fs, logic.OpImplies)
}

func (CaseAnalysis) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	// consequences[pKey] holds the consequent keys reachable from p.
	consequences := map[string]map[string]logic.Formula{}
	for _, f := range fs {
		p, q, ok := asImplication(f)
		if !ok {
			continue
		}
		pk := logic.Key(p)
		if consequences[pk] == nil {
			consequences[pk] = map[string]logic.Formula{}
		}
		consequences[pk][logic.Key(q)] = q
	}
	var out []logic.Formula
	for _, f := range fs {
		c, isOr := asOp(f, logic.OpOr)
		if !isOr {
			continue
		}
		shared := consequences[logic.Key(c.Operands[0])]
		for _, disjunct := range c.Operands[1:] {
			if len(shared) == 0 {
				break
			}
			next := consequences[logic.Key(disjunct)]
			merged := map[string]logic.Formula{}
			for key, r := range shared {
				if _, ok := next[key]; ok {
					merged[key] = r
				}
			}
			shared = merged
		}
		for _, r := range shared {
			out = append(out, r)
		}
	}
	return out, nil
}

// ProofByContradiction detects a formula asserted alongside its negation and
// reports the pair as a ContradictionError.
type ProofByContradiction struct{}

func (ProofByContradiction) Name() string { return "proof_by_contradiction" }

func (ProofByContradiction) CanApply(fs []logic.Formula) bool {
	idx := index(fs)
	for _, f := range fs {
		if _, ok := idx[logic.Key(negate(f))]; ok {
			return true
		}
	}
	return false
}

func (ProofByContradiction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	for _, f := range fs {
		if other, ok := idx[logic.Key(negate(f))]; ok {
			return nil, &ContradictionError{Rule: "proof_by_contradiction", A: f, B: other}
		}
	}
	return nil, nil
}
