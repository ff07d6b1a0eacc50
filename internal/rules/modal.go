package rules

import "dcec/internal/logic"

// ModalRules returns the alethic modal family.
func ModalRules() []Rule {
	return []Rule{
		NecessityElimination{},
		PossibilityIntroduction{},
		NecessityDistribution{},
		ModalDuality{},
		NecessityConjunction{},
	}
}

func asModal(f logic.Formula, op logic.ModalOp) (*logic.Modal, bool) {
	m, ok := f.(*logic.Modal)
	if !ok || m.Op != op {
		return nil, false
	}
	return m, true
}

func hasModal(fs []logic.Formula, op logic.ModalOp) bool {
	for _, f := range fs {
		if _, ok := asModal(f, op); ok {
			return true
		}
	}
	return false
}

func box(f logic.Formula) logic.Formula {
	return &logic.Modal{Op: logic.Necessary, Body: f}
}

func diamond(f logic.Formula) logic.Formula {
	return &logic.Modal{Op: logic.Possible, Body: f}
}

// NecessityElimination derives P from □P.
type NecessityElimination struct{}

func (NecessityElimination) Name() string { return "necessity_elimination" }

func (NecessityElimination) CanApply(fs []logic.Formula) bool { return hasModal(fs, logic.Necessary) }

func (NecessityElimination) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if m, ok := asModal(f, logic.Necessary); ok {
			out = append(out, m.Body)
		}
	}
	return out, nil
}

// PossibilityIntroduction derives ◇P from P.
type PossibilityIntroduction struct{}

func (PossibilityIntroduction) Name() string { return "possibility_introduction" }

func (PossibilityIntroduction) CanApply(fs []logic.Formula) bool { return len(fs) > 0 }

func (PossibilityIntroduction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if _, already := asModal(f, logic.Possible); already {
			continue
		}
		out = append(out, diamond(f))
	}
	return out, nil
}

// NecessityDistribution is the K axiom: from □(P → Q) derive □P → □Q.
type NecessityDistribution struct{}

func (NecessityDistribution) Name() string { return "necessity_distribution" }

func (NecessityDistribution) CanApply(fs []logic.Formula) bool { return hasModal(fs, logic.Necessary) }

func (NecessityDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		m, ok := asModal(f, logic.Necessary)
		if !ok {
			continue
		}
		if p, q, isImpl := asImplication(m.Body); isImpl {
			out = append(out, logic.Implies(box(p), box(q)))
		}
	}
	return out, nil
}

// ModalDuality contracts the negated duals: ¬□¬P yields ◇P and ¬◇¬P yields
// □P.
type ModalDuality struct{}

func (ModalDuality) Name() string { return "modal_duality" }

func (ModalDuality) CanApply(fs []logic.Formula) bool {
	for _, f := range fs {
		if inner, ok := asNot(f); ok {
			if _, isModal := inner.(*logic.Modal); isModal {
				return true
			}
		}
	}
	return false
}

func (ModalDuality) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		inner, ok := asNot(f)
		if !ok {
			continue
		}
		m, ok := inner.(*logic.Modal)
		if !ok {
			continue
		}
		core, negatedBody := asNot(m.Body)
		if !negatedBody {
			continue
		}
		switch m.Op {
		case logic.Necessary:
			out = append(out, diamond(core))
		case logic.Possible:
			out = append(out, box(core))
		}
	}
	return out, nil
}

// NecessityConjunction distributes necessity over a conjunction: from
// □(P ∧ Q) derive □P and □Q.
type NecessityConjunction struct{}

func (NecessityConjunction) Name() string { return "necessity_conjunction" }

func (NecessityConjunction) CanApply(fs []logic.Formula) bool { return hasModal(fs, logic.Necessary) }

func (NecessityConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		m, ok := asModal(f, logic.Necessary)
		if !ok {
			continue
		}
		if c, isAnd := asOp(m.Body, logic.OpAnd); isAnd {
			for _, part := range c.Operands {
				out = append(out, box(part))
			}
		}
	}
	return out, nil
}
