package bridge

import (
	"dcec/internal/logic"
)

// Operator spellings shared by every translator. Deontic, cognitive,
// temporal and modal wrappers become named boolean functions of their
// translated body; agents and time anchors do not survive the abstraction.
var (
	deonticNames = map[logic.DeonticOp]string{
		logic.Obligation:     "obligated",
		logic.Permission:     "permitted",
		logic.Prohibition:    "forbidden",
		logic.Supererogation: "supererogatory",
		logic.Right:          "has_right",
		logic.Liberty:        "has_liberty",
		logic.Power:          "has_power",
		logic.Immunity:       "has_immunity",
	}
	cognitiveNames = map[logic.CognitiveOp]string{
		logic.Belief:     "believes",
		logic.Knowledge:  "knows",
		logic.Intention:  "intends",
		logic.Desire:     "desires",
		logic.Goal:       "has_goal",
		logic.Perception: "perceives",
	}
	temporalNames = map[logic.TemporalOp]string{
		logic.Always:     "always",
		logic.Eventually: "eventually",
		logic.Next:       "next",
		logic.Until:      "until",
		logic.Since:      "since",
	}
	modalNames = map[logic.ModalOp]string{
		logic.Necessary: "necessarily",
		logic.Possible:  "possibly",
	}
)

// wrapperTerm renders the abstraction unit for a non-classical operator:
// the operator's spelled name applied to the canonical body text.
func wrapperTerm(f logic.Formula) (string, bool) {
	switch f := f.(type) {
	case *logic.Modal:
		return modalNames[f.Op] + "(" + logic.Key(f.Body) + ")", true
	case *logic.Deontic:
		return deonticNames[f.Op] + "(" + logic.Key(f.Body) + ")", true
	case *logic.Cognitive:
		return cognitiveNames[f.Op] + "(" + logic.Key(f.Body) + ")", true
	case *logic.Temporal:
		if f.Second != nil {
			return temporalNames[f.Op] + "(" + logic.Key(f.Body) + ", " + logic.Key(f.Second) + ")", true
		}
		return temporalNames[f.Op] + "(" + logic.Key(f.Body) + ")", true
	}
	return "", false
}
