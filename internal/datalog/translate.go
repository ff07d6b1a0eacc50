package datalog

import (
	"fmt"
	"strings"

	"dcec/internal/logic"
)

// propositionPredicate carries zero-argument atoms, which the clause grammar
// cannot express directly: the atom p becomes the fact holds(/p).
const propositionPredicate = "holds"

// FragmentError marks input the Horn translation cannot express. The backend
// reports it as an error verdict rather than guessing.
type FragmentError struct {
	Formula logic.Formula
	Detail  string
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("outside the Horn fragment: %s (%s)", logic.Key(e.Formula), e.Detail)
}

type predUse struct {
	name  string
	arity int
}

// translator accumulates clause lines and the predicates they mention, so
// the generated source can declare every predicate before using it.
type translator struct {
	seen  map[predUse]bool
	preds []predUse
	lines []string
}

func newTranslator() *translator {
	return &translator{seen: map[predUse]bool{}}
}

// translateProgram renders axioms as Datalog source. Ground atoms become
// facts; universally quantified implications whose body is a conjunction of
// atoms become rules. Anything else is outside the fragment.
func translateProgram(axioms []logic.Formula) (string, error) {
	tr := newTranslator()
	for _, ax := range axioms {
		if ax == nil {
			continue
		}
		if err := tr.clause(ax); err != nil {
			return "", err
		}
	}
	return tr.source(), nil
}

// translateGoal renders a ground atom as a query target.
func translateGoal(goal logic.Formula) (string, error) {
	a, ok := goal.(*logic.Atomic)
	if !ok {
		return "", &FragmentError{Formula: goal, Detail: "goal must be a ground atom"}
	}
	return newTranslator().atom(goal, a, nil)
}

func (tr *translator) source() string {
	var sb strings.Builder
	for _, u := range tr.preds {
		sb.WriteString("Decl " + u.name + "(" + declVars(u.arity) + ").\n")
	}
	for _, line := range tr.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (tr *translator) clause(f logic.Formula) error {
	// The universal prefix supplies the rule variables.
	bound := map[string]bool{}
	core := f
	for {
		q, ok := core.(*logic.Quantified)
		if !ok {
			break
		}
		if q.Q != logic.Forall {
			return &FragmentError{Formula: f, Detail: "existential quantifier"}
		}
		bound[q.Var.Name] = true
		core = q.Body
	}

	switch g := core.(type) {
	case *logic.Atomic:
		if len(bound) > 0 {
			return &FragmentError{Formula: f, Detail: "quantified fact"}
		}
		atom, err := tr.atom(f, g, nil)
		if err != nil {
			return err
		}
		tr.lines = append(tr.lines, atom+".")
		return nil

	case *logic.Connective:
		if g.Op != logic.OpImplies {
			return &FragmentError{Formula: f, Detail: "only facts and implications translate"}
		}
		head, ok := g.Operands[1].(*logic.Atomic)
		if !ok {
			return &FragmentError{Formula: f, Detail: "rule head must be an atom"}
		}
		headText, err := tr.atom(f, head, bound)
		if err != nil {
			return err
		}
		bodyTexts, err := tr.body(f, g.Operands[0], bound)
		if err != nil {
			return err
		}
		tr.lines = append(tr.lines, headText+" :- "+strings.Join(bodyTexts, ", ")+".")
		return nil
	}
	return &FragmentError{Formula: f, Detail: "unsupported operator"}
}

func (tr *translator) body(src logic.Formula, body logic.Formula, bound map[string]bool) ([]string, error) {
	conjuncts := []logic.Formula{body}
	if c, ok := body.(*logic.Connective); ok && c.Op == logic.OpAnd {
		conjuncts = c.Operands
	}
	out := make([]string, 0, len(conjuncts))
	for _, c := range conjuncts {
		a, ok := c.(*logic.Atomic)
		if !ok {
			return nil, &FragmentError{Formula: src, Detail: "rule body must be a conjunction of atoms"}
		}
		text, err := tr.atom(src, a, bound)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (tr *translator) atom(src logic.Formula, a *logic.Atomic, bound map[string]bool) (string, error) {
	name := a.Pred.Name
	if !lowerIdent(name) {
		return "", &FragmentError{Formula: src, Detail: fmt.Sprintf("predicate %q is not a datalog identifier", name)}
	}
	if len(a.Args) == 0 {
		tr.notePred(propositionPredicate, 1)
		return propositionPredicate + "(/" + name + ")", nil
	}
	tr.notePred(name, len(a.Args))
	args := make([]string, len(a.Args))
	for i, t := range a.Args {
		text, err := renderTerm(src, t, bound)
		if err != nil {
			return "", err
		}
		args[i] = text
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func (tr *translator) notePred(name string, arity int) {
	u := predUse{name: name, arity: arity}
	if !tr.seen[u] {
		tr.seen[u] = true
		tr.preds = append(tr.preds, u)
	}
}

func renderTerm(src logic.Formula, t logic.Term, bound map[string]bool) (string, error) {
	switch t := t.(type) {
	case *logic.VariableTerm:
		if !bound[t.Var.Name] {
			return "", &FragmentError{Formula: src, Detail: fmt.Sprintf("variable %s is not universally bound", t.Var.Name)}
		}
		v, ok := mangleVar(t.Var.Name)
		if !ok {
			return "", &FragmentError{Formula: src, Detail: fmt.Sprintf("variable %q is not a datalog identifier", t.Var.Name)}
		}
		return v, nil
	case *logic.FunctionTerm:
		if len(t.Args) > 0 {
			return "", &FragmentError{Formula: src, Detail: fmt.Sprintf("function %s: nested terms do not translate", t.Fn.Name)}
		}
		if !lowerIdent(t.Fn.Name) {
			return "", &FragmentError{Formula: src, Detail: fmt.Sprintf("constant %q is not a datalog identifier", t.Fn.Name)}
		}
		return "/" + t.Fn.Name, nil
	}
	return "", &FragmentError{Formula: src, Detail: "unsupported term"}
}

// mangleVar renders a rule variable in the required upper-case-initial form.
func mangleVar(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9', r == '_':
			if i == 0 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return strings.ToUpper(name[:1]) + name[1:], true
}

func declVars(arity int) string {
	vars := make([]string, arity)
	for i := range vars {
		vars[i] = fmt.Sprintf("X%d", i)
	}
	return strings.Join(vars, ", ")
}

// lowerIdent reports whether a symbol fits the identifier grammar shared by
// predicates and name constants.
func lowerIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9', r == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
