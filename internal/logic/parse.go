package logic

import (
	"fmt"
	"strings"
)

// Parse reads one formula from its prefix notation against a namespace.
//
// The surface syntax is parenthesized prefix form: connectives (and, or, not,
// implies, iff), binders ((forall (x Agent) body), (exists ...)), modal
// operators (box, diamond), single-uppercase-letter deontic and cognitive
// operators (O, P, F, B, K, I, D, G) or their spelled-out names, and the
// temporal words (always, eventually, next, until, since). Any other head is
// an atom; undeclared predicates, constants and functions are declared on
// first use with Object-sorted signatures. Binder-introduced variables
// shadow namespace declarations inside their body.
func Parse(ns *Namespace, src string) (Formula, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{ns: ns, toks: toks}
	f, err := p.formula(map[string]Variable{})
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("parse %q: trailing input at token %d", src, p.pos)
	}
	return f, nil
}

type parser struct {
	ns   *Namespace
	toks []string
	pos  int
}

func tokenize(src string) ([]string, error) {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range src {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	if len(toks) == 0 {
		return nil, fmt.Errorf("parse: empty input")
	}
	return toks, nil
}

func (p *parser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", fmt.Errorf("parse: unexpected end of input")
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) expect(tok string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != tok {
		return fmt.Errorf("parse: expected %q, got %q", tok, t)
	}
	return nil
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) formula(scope map[string]Variable) (Formula, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok != "(" {
		if tok == ")" {
			return nil, fmt.Errorf("parse: unexpected )")
		}
		return p.atom(tok, nil)
	}
	head, err := p.next()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(head) {
	case "and", "or":
		ops, err := p.formulaList(scope)
		if err != nil {
			return nil, err
		}
		op := OpAnd
		if strings.ToLower(head) == "or" {
			op = OpOr
		}
		return NewConnective(op, ops...)
	case "not", "~":
		f, err := p.formula(scope)
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewConnective(OpNot, f)
	case "implies", "=>", "->":
		return p.binaryConnective(OpImplies, scope)
	case "iff", "<=>":
		return p.binaryConnective(OpIff, scope)
	case "forall", "exists":
		return p.quantified(head, scope)
	case "box", "necessarily":
		return p.unaryModal(Necessary, scope)
	case "diamond", "possibly":
		return p.unaryModal(Possible, scope)
	case "always", "eventually", "next":
		f, err := p.formula(scope)
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewTemporal(TemporalOp(strings.ToUpper(head)), nil, f, nil)
	case "until", "since":
		a, err := p.formula(scope)
		if err != nil {
			return nil, err
		}
		b, err := p.formula(scope)
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewTemporal(TemporalOp(strings.ToUpper(head)), nil, a, b)
	}
	if op, ok := deonticHead(head); ok {
		return p.deontic(op, scope)
	}
	if op, ok := cognitiveHead(head); ok {
		return p.cognitive(op, scope)
	}
	return p.atomApplication(head, scope)
}

func (p *parser) formulaList(scope map[string]Variable) ([]Formula, error) {
	var ops []Formula
	for p.peek() != ")" {
		f, err := p.formula(scope)
		if err != nil {
			return nil, err
		}
		ops = append(ops, f)
	}
	p.pos++ // consume )
	return ops, nil
}

func (p *parser) binaryConnective(op ConnectiveOp, scope map[string]Variable) (Formula, error) {
	a, err := p.formula(scope)
	if err != nil {
		return nil, err
	}
	b, err := p.formula(scope)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewConnective(op, a, b)
}

func (p *parser) unaryModal(op ModalOp, scope map[string]Variable) (Formula, error) {
	f, err := p.formula(scope)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewModal(op, f)
}

// quantified parses (forall (x Sort) body).
func (p *parser) quantified(head string, scope map[string]Variable) (Formula, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	sortName, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	s, ok := p.ns.SortByName(sortName)
	if !ok {
		return nil, fmt.Errorf("parse: unknown sort %s in binder", sortName)
	}
	v := NewVariable(name, s)
	inner := make(map[string]Variable, len(scope)+1)
	for k, sv := range scope {
		inner[k] = sv
	}
	inner[name] = v
	body, err := p.formula(inner)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	q := Forall
	if strings.ToLower(head) == "exists" {
		q = Exists
	}
	return NewQuantified(q, v, body)
}

// deontic parses (O body) or (O agent body).
func (p *parser) deontic(op DeonticOp, scope map[string]Variable) (Formula, error) {
	var agent Term
	// A symbol before a formula is the agent term; formulas in operand
	// position are either parenthesized or bare zero-ary atoms, so a lone
	// symbol followed by more input is a term.
	if p.peek() != "(" && p.peek() != ")" {
		save := p.pos
		sym, _ := p.next()
		if p.peek() == ")" {
			// (O p): single operand, treat as formula
			p.pos = save
		} else {
			t, err := p.symbolTerm(sym, scope)
			if err != nil {
				return nil, err
			}
			agent = t
		}
	}
	body, err := p.formula(scope)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewDeontic(op, agent, body)
}

// cognitive parses (B agent body); the agent is mandatory.
func (p *parser) cognitive(op CognitiveOp, scope map[string]Variable) (Formula, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	var agent Term
	if tok == "(" {
		agent, err = p.compoundTerm(scope)
	} else {
		agent, err = p.symbolTerm(tok, scope)
	}
	if err != nil {
		return nil, err
	}
	body, err := p.formula(scope)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewCognitive(op, agent, body)
}

func (p *parser) atomApplication(head string, scope map[string]Variable) (Formula, error) {
	var args []Term
	for p.peek() != ")" {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		var t Term
		if tok == "(" {
			t, err = p.compoundTerm(scope)
		} else {
			t, err = p.symbolTerm(tok, scope)
		}
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	p.pos++ // consume )
	return p.atom(head, args)
}

func (p *parser) atom(name string, args []Term) (Formula, error) {
	pred, ok := p.ns.PredicateByName(name)
	if !ok {
		sorts := make([]string, len(args))
		for i := range sorts {
			sorts[i] = SortObject
		}
		var err error
		pred, err = p.ns.DeclarePredicate(name, sorts...)
		if err != nil {
			return nil, err
		}
	}
	return NewAtomic(pred, args...)
}

func (p *parser) compoundTerm(scope map[string]Variable) (Term, error) {
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	var args []Term
	for p.peek() != ")" {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		var t Term
		if tok == "(" {
			t, err = p.compoundTerm(scope)
		} else {
			t, err = p.symbolTerm(tok, scope)
		}
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	p.pos++ // consume )
	fn, ok := p.ns.FunctionByName(name)
	if !ok {
		sorts := make([]string, len(args))
		for i := range sorts {
			sorts[i] = SortObject
		}
		fn, err = p.ns.DeclareFunction(name, SortObject, sorts...)
		if err != nil {
			return nil, err
		}
	}
	return NewFunctionTerm(fn, args...)
}

func (p *parser) symbolTerm(name string, scope map[string]Variable) (Term, error) {
	if v, ok := scope[name]; ok {
		return NewVariableTerm(v), nil
	}
	if v, ok := p.ns.VariableByName(name); ok {
		return NewVariableTerm(v), nil
	}
	if fn, ok := p.ns.FunctionByName(name); ok {
		if fn.Arity() != 0 {
			return nil, fmt.Errorf("parse: function %s needs %d arguments", name, fn.Arity())
		}
		return NewFunctionTerm(fn)
	}
	fn, err := p.ns.DeclareFunction(name, SortObject)
	if err != nil {
		return nil, err
	}
	return NewFunctionTerm(fn)
}

func deonticHead(head string) (DeonticOp, bool) {
	switch head {
	case "O":
		return Obligation, true
	case "P":
		return Permission, true
	case "F":
		return Prohibition, true
	}
	switch strings.ToLower(head) {
	case "obligation", "obligated":
		return Obligation, true
	case "permission", "permitted":
		return Permission, true
	case "prohibition", "forbidden":
		return Prohibition, true
	case "super", "supererogation":
		return Supererogation, true
	case "right":
		return Right, true
	case "liberty":
		return Liberty, true
	case "power":
		return Power, true
	case "immunity":
		return Immunity, true
	}
	return "", false
}

func cognitiveHead(head string) (CognitiveOp, bool) {
	switch head {
	case "B":
		return Belief, true
	case "K":
		return Knowledge, true
	case "I":
		return Intention, true
	case "D":
		return Desire, true
	case "G":
		return Goal, true
	}
	switch strings.ToLower(head) {
	case "believes", "belief":
		return Belief, true
	case "knows", "knowledge":
		return Knowledge, true
	case "intends", "intention":
		return Intention, true
	case "desires", "desire":
		return Desire, true
	case "goal":
		return Goal, true
	case "perc", "perceives", "perception":
		return Perception, true
	}
	return "", false
}
