package rules

import "dcec/internal/logic"

// TemporalRules returns the linear temporal family. Rules that keep a
// temporal operator in the conclusion preserve the premise's time anchor;
// eliminations drop it.
func TemporalRules() []Rule {
	return []Rule{
		AlwaysElimination{},
		AlwaysDistribution{},
		EventuallyIntroduction{},
		TemporalDuality{},
		NextDistribution{},
		UntilUnfolding{},
		UntilImpliesEventually{},
		SinceElimination{},
		AlwaysConjunction{},
		EventuallyDisjunction{},
		AlwaysIdempotence{},
		EventuallyIdempotence{},
		AlwaysImpliesEventually{},
		NextConjunction{},
		AlwaysModusPonens{},
		EventuallyMonotonicity{},
		TemporalPersistence{},
	}
}

func asTemporal(f logic.Formula, op logic.TemporalOp) (*logic.Temporal, bool) {
	t, ok := f.(*logic.Temporal)
	if !ok || t.Op != op {
		return nil, false
	}
	return t, true
}

func hasTemporal(fs []logic.Formula, op logic.TemporalOp) bool {
	for _, f := range fs {
		if _, ok := asTemporal(f, op); ok {
			return true
		}
	}
	return false
}

func temp(op logic.TemporalOp, time logic.Term, body logic.Formula) logic.Formula {
	return &logic.Temporal{Op: op, Time: time, Body: body}
}

// AlwaysElimination derives P from ALWAYS(P).
type AlwaysElimination struct{}

func (AlwaysElimination) Name() string { return "always_elimination" }

func (AlwaysElimination) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (AlwaysElimination) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Always); ok {
			out = append(out, t.Body)
		}
	}
	return out, nil
}

// AlwaysDistribution derives ALWAYS(P) → ALWAYS(Q) from ALWAYS(P → Q).
type AlwaysDistribution struct{}

func (AlwaysDistribution) Name() string { return "always_distribution" }

func (AlwaysDistribution) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (AlwaysDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Always)
		if !ok {
			continue
		}
		if p, q, isImpl := asImplication(t.Body); isImpl {
			out = append(out, logic.Implies(temp(logic.Always, t.Time, p), temp(logic.Always, t.Time, q)))
		}
	}
	return out, nil
}

// EventuallyIntroduction derives EVENTUALLY(P) from P.
type EventuallyIntroduction struct{}

func (EventuallyIntroduction) Name() string { return "eventually_introduction" }

func (EventuallyIntroduction) CanApply(fs []logic.Formula) bool { return len(fs) > 0 }

func (EventuallyIntroduction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if _, already := asTemporal(f, logic.Eventually); already {
			continue
		}
		out = append(out, temp(logic.Eventually, nil, f))
	}
	return out, nil
}

// TemporalDuality contracts negated duals: ¬ALWAYS(¬P) yields EVENTUALLY(P)
// and ¬EVENTUALLY(¬P) yields ALWAYS(P).
type TemporalDuality struct{}

func (TemporalDuality) Name() string { return "temporal_duality" }

func (TemporalDuality) CanApply(fs []logic.Formula) bool {
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if _, isTemp := inner.(*logic.Temporal); isTemp {
				return true
			}
		}
	}
	return false
}

func (TemporalDuality) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		inner, ok := asNot(f)
		if !ok {
			continue
		}
		t, ok := inner.(*logic.Temporal)
		if !ok || t.Second != nil {
			continue
		}
		core, negatedBody := asNot(t.Body)
		if !negatedBody {
			continue
		}
		switch t.Op {
		case logic.Always:
			out = append(out, temp(logic.Eventually, t.Time, core))
		case logic.Eventually:
			out = append(out, temp(logic.Always, t.Time, core))
		}
	}
	return out, nil
}

// NextDistribution derives NEXT(P) → NEXT(Q) from NEXT(P → Q).
type NextDistribution struct{}

func (NextDistribution) Name() string { return "next_distribution" }

func (NextDistribution) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Next) }

func (NextDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Next)
		if !ok {
			continue
		}
		if p, q, isImpl := asImplication(t.Body); isImpl {
			out = append(out, logic.Implies(temp(logic.Next, t.Time, p), temp(logic.Next, t.Time, q)))
		}
	}
	return out, nil
}

// UntilUnfolding expands UNTIL(P, Q) into Q ∨ (P ∧ NEXT(UNTIL(P, Q))).
type UntilUnfolding struct{}

func (UntilUnfolding) Name() string { return "until_unfolding" }

func (UntilUnfolding) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Until) }

func (UntilUnfolding) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Until); ok {
			out = append(out, logic.Or(t.Second, logic.And(t.Body, temp(logic.Next, t.Time, f))))
		}
	}
	return out, nil
}

// UntilImpliesEventually derives EVENTUALLY(Q) from UNTIL(P, Q).
type UntilImpliesEventually struct{}

func (UntilImpliesEventually) Name() string { return "until_implies_eventually" }

func (UntilImpliesEventually) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Until) }

func (UntilImpliesEventually) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Until); ok {
			out = append(out, temp(logic.Eventually, t.Time, t.Second))
		}
	}
	return out, nil
}

// SinceElimination derives Q ∨ P from SINCE(P, Q): either the anchor holds
// now or the maintained formula does.
type SinceElimination struct{}

func (SinceElimination) Name() string { return "since_elimination" }

func (SinceElimination) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Since) }

func (SinceElimination) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Since); ok {
			out = append(out, logic.Or(t.Second, t.Body))
		}
	}
	return out, nil
}

// AlwaysConjunction splits ALWAYS(P ∧ Q) into ALWAYS(P) and ALWAYS(Q).
type AlwaysConjunction struct{}

func (AlwaysConjunction) Name() string { return "always_conjunction" }

func (AlwaysConjunction) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (AlwaysConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Always)
		if !ok {
			continue
		}
		if c, isAnd := asOp(t.Body, logic.OpAnd); isAnd {
			for _, part := range c.Operands {
				out = append(out, temp(logic.Always, t.Time, part))
			}
		}
	}
	return out, nil
}

// EventuallyDisjunction splits EVENTUALLY(P ∨ Q) into
// EVENTUALLY(P) ∨ EVENTUALLY(Q).
type EventuallyDisjunction struct{}

func (EventuallyDisjunction) Name() string { return "eventually_disjunction" }

func (EventuallyDisjunction) CanApply(fs []logic.Formula) bool {
	return hasTemporal(fs, logic.Eventually)
}

func (EventuallyDisjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Eventually)
		if !ok {
			continue
		}
		if c, isOr := asOp(t.Body, logic.OpOr); isOr {
			parts := make([]logic.Formula, len(c.Operands))
			for i, part := range c.Operands {
				parts[i] = temp(logic.Eventually, t.Time, part)
			}
			out = append(out, logic.Or(parts...))
		}
	}
	return out, nil
}

// AlwaysIdempotence collapses ALWAYS(ALWAYS(P)) to ALWAYS(P).
type AlwaysIdempotence struct{}

func (AlwaysIdempotence) Name() string { return "always_idempotence" }

func (AlwaysIdempotence) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (AlwaysIdempotence) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Always)
		if !ok {
			continue
		}
		if _, nested := asTemporal(t.Body, logic.Always); nested {
			out = append(out, t.Body)
		}
	}
	return out, nil
}

// EventuallyIdempotence collapses EVENTUALLY(EVENTUALLY(P)) to EVENTUALLY(P).
type EventuallyIdempotence struct{}

func (EventuallyIdempotence) Name() string { return "eventually_idempotence" }

func (EventuallyIdempotence) CanApply(fs []logic.Formula) bool {
	return hasTemporal(fs, logic.Eventually)
}

func (EventuallyIdempotence) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Eventually)
		if !ok {
			continue
		}
		if _, nested := asTemporal(t.Body, logic.Eventually); nested {
			out = append(out, t.Body)
		}
	}
	return out, nil
}

// AlwaysImpliesEventually derives EVENTUALLY(P) from ALWAYS(P).
type AlwaysImpliesEventually struct{}

func (AlwaysImpliesEventually) Name() string { return "always_implies_eventually" }

func (AlwaysImpliesEventually) CanApply(fs []logic.Formula) bool {
	return hasTemporal(fs, logic.Always)
}

func (AlwaysImpliesEventually) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Always); ok {
			out = append(out, temp(logic.Eventually, t.Time, t.Body))
		}
	}
	return out, nil
}

// NextConjunction splits NEXT(P ∧ Q) into NEXT(P) and NEXT(Q).
type NextConjunction struct{}

func (NextConjunction) Name() string { return "next_conjunction" }

func (NextConjunction) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Next) }

func (NextConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Next)
		if !ok {
			continue
		}
		if c, isAnd := asOp(t.Body, logic.OpAnd); isAnd {
			for _, part := range c.Operands {
				out = append(out, temp(logic.Next, t.Time, part))
			}
		}
	}
	return out, nil
}

// AlwaysModusPonens derives ALWAYS(Q) from ALWAYS(P → Q) and ALWAYS(P).
type AlwaysModusPonens struct{}

func (AlwaysModusPonens) Name() string { return "always_modus_ponens" }

func (AlwaysModusPonens) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (AlwaysModusPonens) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Always)
		if !ok {
			continue
		}
		p, q, isImpl := asImplication(t.Body)
		if !isImpl {
			continue
		}
		if _, present := idx[logic.Key(temp(logic.Always, t.Time, p))]; present {
			out = append(out, temp(logic.Always, t.Time, q))
		}
	}
	return out, nil
}

// EventuallyMonotonicity derives EVENTUALLY(Q) from ALWAYS(P → Q) and
// EVENTUALLY(P).
type EventuallyMonotonicity struct{}

func (EventuallyMonotonicity) Name() string { return "eventually_monotonicity" }

func (EventuallyMonotonicity) CanApply(fs []logic.Formula) bool {
	return hasTemporal(fs, logic.Always) && hasTemporal(fs, logic.Eventually)
}

func (EventuallyMonotonicity) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		t, ok := asTemporal(f, logic.Always)
		if !ok {
			continue
		}
		p, q, isImpl := asImplication(t.Body)
		if !isImpl {
			continue
		}
		if _, present := idx[logic.Key(temp(logic.Eventually, t.Time, p))]; present {
			out = append(out, temp(logic.Eventually, t.Time, q))
		}
	}
	return out, nil
}

// TemporalPersistence derives NEXT(P) from ALWAYS(P).
type TemporalPersistence struct{}

func (TemporalPersistence) Name() string { return "temporal_persistence" }

func (TemporalPersistence) CanApply(fs []logic.Formula) bool { return hasTemporal(fs, logic.Always) }

func (TemporalPersistence) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if t, ok := asTemporal(f, logic.Always); ok {
			out = append(out, temp(logic.Next, t.Time, t.Body))
		}
	}
	return out, nil
}
