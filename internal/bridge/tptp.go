package bridge

import (
	"fmt"
	"strings"
	"unicode"

	"dcec/internal/logic"
)

// WriteTPTP renders a proof obligation in TPTP first-order form: one
// fof(axiom_N, axiom, ...) line per premise and a final conjecture line.
// Operator wrappers become named relations over their quoted canonical body,
// so the inner structure of a wrapped formula is opaque to the prover.
func WriteTPTP(name string, goal logic.Formula, axioms []logic.Formula) string {
	var sb strings.Builder
	sb.WriteString("% Problem: " + name + "\n")
	n := 0
	for _, ax := range axioms {
		if ax == nil {
			continue
		}
		n++
		sb.WriteString(fmt.Sprintf("fof(axiom_%d, axiom, %s).\n", n, tptpFormula(ax)))
	}
	sb.WriteString(fmt.Sprintf("fof(goal, conjecture, %s).\n", tptpFormula(goal)))
	return sb.String()
}

// WriteTPTPSat renders a bare satisfiability problem: every conjunct is an
// axiom and there is no conjecture, so SZS Satisfiable/Unsatisfiable answers
// apply directly.
func WriteTPTPSat(name string, f logic.Formula) string {
	var sb strings.Builder
	sb.WriteString("% Problem: " + name + "\n")
	sb.WriteString(fmt.Sprintf("fof(axiom_1, axiom, %s).\n", tptpFormula(f)))
	return sb.String()
}

func tptpFormula(f logic.Formula) string {
	switch f := f.(type) {
	case *logic.Modal:
		return modalNames[f.Op] + "(" + tptpQuote(logic.Key(f.Body)) + ")"
	case *logic.Deontic:
		return deonticNames[f.Op] + "(" + tptpQuote(logic.Key(f.Body)) + ")"
	case *logic.Cognitive:
		return cognitiveNames[f.Op] + "(" + tptpQuote(logic.Key(f.Body)) + ")"
	case *logic.Temporal:
		if f.Second != nil {
			return temporalNames[f.Op] + "(" + tptpQuote(logic.Key(f.Body)) + "," + tptpQuote(logic.Key(f.Second)) + ")"
		}
		return temporalNames[f.Op] + "(" + tptpQuote(logic.Key(f.Body)) + ")"
	case *logic.Atomic:
		if len(f.Args) == 0 {
			return tptpAtomName(f.Pred.Name)
		}
		parts := make([]string, len(f.Args))
		for i, a := range f.Args {
			parts[i] = tptpTerm(a)
		}
		return tptpAtomName(f.Pred.Name) + "(" + strings.Join(parts, ",") + ")"
	case *logic.Connective:
		switch f.Op {
		case logic.OpNot:
			return "~(" + tptpFormula(f.Operands[0]) + ")"
		case logic.OpAnd:
			return tptpJoin(f.Operands, " & ")
		case logic.OpOr:
			return tptpJoin(f.Operands, " | ")
		case logic.OpImplies:
			return "(" + tptpFormula(f.Operands[0]) + " => " + tptpFormula(f.Operands[1]) + ")"
		case logic.OpIff:
			return "(" + tptpFormula(f.Operands[0]) + " <=> " + tptpFormula(f.Operands[1]) + ")"
		}
	case *logic.Quantified:
		binder := "!"
		if f.Q == logic.Exists {
			binder = "?"
		}
		return binder + " [" + tptpVar(f.Var.Name) + "] : (" + tptpFormula(f.Body) + ")"
	}
	return tptpQuote(logic.Key(f))
}

func tptpJoin(operands []logic.Formula, sep string) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = tptpFormula(o)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func tptpTerm(t logic.Term) string {
	switch t := t.(type) {
	case *logic.VariableTerm:
		return tptpVar(t.Var.Name)
	case *logic.FunctionTerm:
		if len(t.Args) == 0 {
			return tptpAtomName(t.Fn.Name)
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = tptpTerm(a)
		}
		return tptpAtomName(t.Fn.Name) + "(" + strings.Join(parts, ",") + ")"
	}
	return tptpQuote(t.String())
}

// tptpVar renders a variable name in the required upper-case-initial form.
func tptpVar(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			if unicode.IsLetter(r) {
				sb.WriteRune(unicode.ToUpper(r))
			} else {
				sb.WriteString("V_")
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "V"
	}
	return sb.String()
}

// tptpAtomName renders a predicate or function symbol, quoting anything
// outside the lower-word grammar.
func tptpAtomName(name string) string {
	if isLowerWord(name) {
		return name
	}
	return tptpQuote(name)
}

func isLowerWord(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_', r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// tptpQuote wraps arbitrary text in a single-quoted TPTP atom.
func tptpQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
