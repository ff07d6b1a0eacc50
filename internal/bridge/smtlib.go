package bridge

import (
	"strings"

	"dcec/internal/logic"
)

// WriteSMTLIB renders a proof obligation as an SMT-LIB 2 script: a Bool
// declaration per abstraction unit, one assertion per axiom, the negated
// goal, and a final check-sat. An unsat answer from any SMT-LIB solver
// certifies the goal.
func WriteSMTLIB(name string, goal logic.Formula, axioms []logic.Formula) string {
	w := &smtWriter{seen: map[string]bool{}}

	asserts := make([]string, 0, len(axioms)+1)
	for _, ax := range axioms {
		if ax == nil {
			continue
		}
		asserts = append(asserts, "(assert "+w.expr(ax)+")")
	}
	asserts = append(asserts, "(assert (not "+w.expr(goal)+"))")

	var sb strings.Builder
	sb.WriteString("; Problem: " + name + "\n")
	sb.WriteString("(set-logic QF_UF)\n")
	for _, decl := range w.decls {
		sb.WriteString("(declare-const " + smtSymbol(decl) + " Bool)\n")
	}
	for _, a := range asserts {
		sb.WriteString(a + "\n")
	}
	sb.WriteString("(check-sat)\n")
	sb.WriteString("(get-model)\n")
	return sb.String()
}

type smtWriter struct {
	decls []string
	seen  map[string]bool
}

func (w *smtWriter) expr(f logic.Formula) string {
	if name, ok := wrapperTerm(f); ok {
		return w.atom(name)
	}
	switch f := f.(type) {
	case *logic.Atomic:
		return w.atom(f.String())
	case *logic.Connective:
		switch f.Op {
		case logic.OpNot:
			return "(not " + w.expr(f.Operands[0]) + ")"
		case logic.OpAnd:
			return w.nary("and", f.Operands)
		case logic.OpOr:
			return w.nary("or", f.Operands)
		case logic.OpImplies:
			return "(=> " + w.expr(f.Operands[0]) + " " + w.expr(f.Operands[1]) + ")"
		case logic.OpIff:
			return "(= " + w.expr(f.Operands[0]) + " " + w.expr(f.Operands[1]) + ")"
		}
	}
	return w.atom(logic.Key(f))
}

func (w *smtWriter) nary(op string, operands []logic.Formula) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = w.expr(o)
	}
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}

func (w *smtWriter) atom(name string) string {
	if !w.seen[name] {
		w.seen[name] = true
		w.decls = append(w.decls, name)
	}
	return smtSymbol(name)
}

// smtSymbol quotes names that fall outside the simple-symbol grammar.
func smtSymbol(name string) string {
	if isSimpleSymbol(name) {
		return name
	}
	return "|" + name + "|"
}

func isSimpleSymbol(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
