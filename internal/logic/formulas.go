// Package logic defines the sorted term language and the formula variants of
// the deontic cognitive event calculus: first-order atoms and connectives,
// typed quantifiers, and the modal, deontic, cognitive and temporal operators
// layered above them. Formulas are immutable and form a closed sum; the
// canonical String rendering is deterministic, and the proof engine keys its
// derived sets and caches by it.
package logic

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Formula is the sealed interface over the seven formula variants.
type Formula interface {
	fmt.Stringer

	// FreeVariables returns the variables occurring free in the formula.
	FreeVariables() VarSet
	// Substitute replaces free occurrences of v with t, avoiding capture.
	Substitute(v Variable, t Term) Formula

	isFormula()
}

// ConnectiveOp enumerates the propositional connectives.
type ConnectiveOp string

const (
	OpAnd     ConnectiveOp = "AND"
	OpOr      ConnectiveOp = "OR"
	OpNot     ConnectiveOp = "NOT"
	OpImplies ConnectiveOp = "IMPLIES"
	OpIff     ConnectiveOp = "BICONDITIONAL"
)

// Quantifier enumerates the binders.
type Quantifier string

const (
	Forall Quantifier = "FORALL"
	Exists Quantifier = "EXISTS"
)

// ModalOp enumerates the alethic modalities.
type ModalOp string

const (
	Necessary ModalOp = "NECESSARY"
	Possible  ModalOp = "POSSIBLE"
)

// DeonticOp enumerates the deontic operators, the classic triad plus the
// Hohfeldian positions.
type DeonticOp string

const (
	Obligation     DeonticOp = "OBLIGATION"
	Permission     DeonticOp = "PERMISSION"
	Prohibition    DeonticOp = "PROHIBITION"
	Supererogation DeonticOp = "SUPEREROGATION"
	Right          DeonticOp = "RIGHT"
	Liberty        DeonticOp = "LIBERTY"
	Power          DeonticOp = "POWER"
	Immunity       DeonticOp = "IMMUNITY"
)

// CognitiveOp enumerates the agent attitude operators.
type CognitiveOp string

const (
	Belief     CognitiveOp = "BELIEF"
	Knowledge  CognitiveOp = "KNOWLEDGE"
	Intention  CognitiveOp = "INTENTION"
	Desire     CognitiveOp = "DESIRE"
	Goal       CognitiveOp = "GOAL"
	Perception CognitiveOp = "PERCEPTION"
)

// TemporalOp enumerates the temporal operators. Until and Since are binary;
// the rest take a single formula operand.
type TemporalOp string

const (
	Always     TemporalOp = "ALWAYS"
	Eventually TemporalOp = "EVENTUALLY"
	Next       TemporalOp = "NEXT"
	Until      TemporalOp = "UNTIL"
	Since      TemporalOp = "SINCE"
)

var (
	connectiveGlyph = map[ConnectiveOp]string{
		OpAnd:     "∧",
		OpOr:      "∨",
		OpImplies: "→",
		OpIff:     "↔",
	}
	modalGlyph = map[ModalOp]string{
		Necessary: "□",
		Possible:  "◇",
	}
	deonticGlyph = map[DeonticOp]string{
		Obligation:     "O",
		Permission:     "P",
		Prohibition:    "F",
		Supererogation: "SUPER",
		Right:          "RIGHT",
		Liberty:        "LIBERTY",
		Power:          "POWER",
		Immunity:       "IMMUNITY",
	}
	cognitiveGlyph = map[CognitiveOp]string{
		Belief:     "B",
		Knowledge:  "K",
		Intention:  "I",
		Desire:     "D",
		Goal:       "G",
		Perception: "PERC",
	}
)

// ======================== Atomic ========================

// Atomic is a predicate applied to terms.
type Atomic struct {
	Pred *Predicate
	Args []Term
}

// NewAtomic applies pred to args, validating arity and argument sorts.
func NewAtomic(pred *Predicate, args ...Term) (*Atomic, error) {
	if pred == nil {
		return nil, operandError("atom", "nil predicate symbol")
	}
	if len(args) != pred.Arity() {
		return nil, arityError(pred.Name, pred.Arity(), len(args))
	}
	for i, a := range args {
		if a == nil {
			return nil, operandError(pred.Name, fmt.Sprintf("argument %d is nil", i))
		}
		want := pred.ArgSorts[i]
		if got := a.Sort(); got != nil && want != nil && !got.IsSubtypeOf(want) {
			return nil, sortError(pred.Name, i, want, got)
		}
	}
	return &Atomic{Pred: pred, Args: args}, nil
}

// Atom builds a zero-ary atomic formula, declaring its predicate inline.
func Atom(name string) *Atomic {
	return &Atomic{Pred: NewPredicate(name)}
}

func (f *Atomic) isFormula() {}

func (f *Atomic) FreeVariables() VarSet {
	vs := VarSet{}
	for _, a := range f.Args {
		termFreeVars(a, vs)
	}
	return vs
}

func (f *Atomic) Substitute(v Variable, t Term) Formula {
	if len(f.Args) == 0 {
		return f
	}
	args := make([]Term, len(f.Args))
	changed := false
	for i, a := range f.Args {
		args[i] = a.Substitute(v, t)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return f
	}
	return &Atomic{Pred: f.Pred, Args: args}
}

func (f *Atomic) String() string {
	if len(f.Args) == 0 {
		return f.Pred.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Pred.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ======================== Connective ========================

// Connective joins formulas with a propositional operator. NOT takes exactly
// one operand, IMPLIES and BICONDITIONAL exactly two, AND and OR two or more.
type Connective struct {
	Op       ConnectiveOp
	Operands []Formula
}

// NewConnective validates operand counts against the operator's arity.
func NewConnective(op ConnectiveOp, operands ...Formula) (*Connective, error) {
	for i, o := range operands {
		if o == nil {
			return nil, operandError(string(op), fmt.Sprintf("operand %d is nil", i))
		}
	}
	switch op {
	case OpNot:
		if len(operands) != 1 {
			return nil, arityError(string(op), 1, len(operands))
		}
	case OpImplies, OpIff:
		if len(operands) != 2 {
			return nil, arityError(string(op), 2, len(operands))
		}
	case OpAnd, OpOr:
		if len(operands) < 2 {
			return nil, operandError(string(op), fmt.Sprintf("needs at least 2 operands, got %d", len(operands)))
		}
	default:
		return nil, operandError(string(op), "unknown connective")
	}
	return &Connective{Op: op, Operands: operands}, nil
}

func (f *Connective) isFormula() {}

func (f *Connective) FreeVariables() VarSet {
	vs := VarSet{}
	for _, o := range f.Operands {
		vs.AddAll(o.FreeVariables())
	}
	return vs
}

func (f *Connective) Substitute(v Variable, t Term) Formula {
	ops := make([]Formula, len(f.Operands))
	changed := false
	for i, o := range f.Operands {
		ops[i] = o.Substitute(v, t)
		if ops[i] != o {
			changed = true
		}
	}
	if !changed {
		return f
	}
	return &Connective{Op: f.Op, Operands: ops}
}

func (f *Connective) String() string {
	if f.Op == OpNot {
		return "¬" + f.Operands[0].String()
	}
	parts := make([]string, len(f.Operands))
	for i, o := range f.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+connectiveGlyph[f.Op]+" ") + ")"
}

// ======================== Quantified ========================

// Quantified binds a variable over a body formula.
type Quantified struct {
	Q    Quantifier
	Var  Variable
	Body Formula
}

// NewQuantified binds v over body.
func NewQuantified(q Quantifier, v Variable, body Formula) (*Quantified, error) {
	if body == nil {
		return nil, operandError(string(q), "nil body")
	}
	if q != Forall && q != Exists {
		return nil, operandError(string(q), "unknown quantifier")
	}
	return &Quantified{Q: q, Var: v, Body: body}, nil
}

func (f *Quantified) isFormula() {}

func (f *Quantified) FreeVariables() VarSet {
	vs := f.Body.FreeVariables()
	delete(vs, f.Var.Key())
	return vs
}

// Substitute leaves bound occurrences untouched. When the replacement term
// mentions the bound variable the substitution would capture it; the subtree
// is returned unchanged and a warning is logged.
func (f *Quantified) Substitute(v Variable, t Term) Formula {
	if f.Var.Key() == v.Key() {
		return f
	}
	tv := VarSet{}
	termFreeVars(t, tv)
	if tv.Contains(f.Var) {
		zap.L().Warn("substitution skipped: replacement would be captured",
			zap.String("bound", f.Var.Key()),
			zap.String("variable", v.Key()))
		return f
	}
	body := f.Body.Substitute(v, t)
	if body == f.Body {
		return f
	}
	return &Quantified{Q: f.Q, Var: f.Var, Body: body}
}

func (f *Quantified) String() string {
	glyph := "∀"
	if f.Q == Exists {
		glyph = "∃"
	}
	return glyph + f.Var.Name + ":" + f.Var.Sort.String() + ". " + f.Body.String()
}

// ======================== Modal ========================

// Modal applies an alethic modality to a formula.
type Modal struct {
	Op   ModalOp
	Body Formula
}

// NewModal wraps body in a modality.
func NewModal(op ModalOp, body Formula) (*Modal, error) {
	if body == nil {
		return nil, operandError(string(op), "nil body")
	}
	if _, ok := modalGlyph[op]; !ok {
		return nil, operandError(string(op), "unknown modality")
	}
	return &Modal{Op: op, Body: body}, nil
}

func (f *Modal) isFormula() {}

func (f *Modal) FreeVariables() VarSet { return f.Body.FreeVariables() }

func (f *Modal) Substitute(v Variable, t Term) Formula {
	body := f.Body.Substitute(v, t)
	if body == f.Body {
		return f
	}
	return &Modal{Op: f.Op, Body: body}
}

func (f *Modal) String() string {
	return modalGlyph[f.Op] + "(" + f.Body.String() + ")"
}

// ======================== Deontic ========================

// Deontic applies a normative operator to a formula, optionally indexed by
// the agent the norm addresses.
type Deontic struct {
	Op    DeonticOp
	Agent Term // nil for agent-neutral norms
	Body  Formula
}

// NewDeontic wraps body in a deontic operator. Agent may be nil.
func NewDeontic(op DeonticOp, agent Term, body Formula) (*Deontic, error) {
	if body == nil {
		return nil, operandError(string(op), "nil body")
	}
	if _, ok := deonticGlyph[op]; !ok {
		return nil, operandError(string(op), "unknown deontic operator")
	}
	return &Deontic{Op: op, Agent: agent, Body: body}, nil
}

func (f *Deontic) isFormula() {}

func (f *Deontic) FreeVariables() VarSet {
	vs := VarSet{}
	if f.Agent != nil {
		termFreeVars(f.Agent, vs)
	}
	vs.AddAll(f.Body.FreeVariables())
	return vs
}

func (f *Deontic) Substitute(v Variable, t Term) Formula {
	agent := f.Agent
	if agent != nil {
		agent = agent.Substitute(v, t)
	}
	body := f.Body.Substitute(v, t)
	if agent == f.Agent && body == f.Body {
		return f
	}
	return &Deontic{Op: f.Op, Agent: agent, Body: body}
}

func (f *Deontic) String() string {
	s := deonticGlyph[f.Op]
	if f.Agent != nil {
		s += "[" + f.Agent.String() + "]"
	}
	return s + "(" + f.Body.String() + ")"
}

// ======================== Cognitive ========================

// Cognitive applies an attitude operator held by an agent to a formula. The
// agent is mandatory: an attitude without a holder is meaningless.
type Cognitive struct {
	Op    CognitiveOp
	Agent Term
	Body  Formula
}

// NewCognitive wraps body in an attitude held by agent.
func NewCognitive(op CognitiveOp, agent Term, body Formula) (*Cognitive, error) {
	if agent == nil {
		return nil, &ValidationError{Kind: KindAgent, Symbol: string(op), Detail: "cognitive operator requires an agent"}
	}
	if body == nil {
		return nil, operandError(string(op), "nil body")
	}
	if _, ok := cognitiveGlyph[op]; !ok {
		return nil, operandError(string(op), "unknown cognitive operator")
	}
	return &Cognitive{Op: op, Agent: agent, Body: body}, nil
}

func (f *Cognitive) isFormula() {}

func (f *Cognitive) FreeVariables() VarSet {
	vs := VarSet{}
	termFreeVars(f.Agent, vs)
	vs.AddAll(f.Body.FreeVariables())
	return vs
}

func (f *Cognitive) Substitute(v Variable, t Term) Formula {
	agent := f.Agent.Substitute(v, t)
	body := f.Body.Substitute(v, t)
	if agent == f.Agent && body == f.Body {
		return f
	}
	return &Cognitive{Op: f.Op, Agent: agent, Body: body}
}

func (f *Cognitive) String() string {
	return cognitiveGlyph[f.Op] + "[" + f.Agent.String() + "](" + f.Body.String() + ")"
}

// ======================== Temporal ========================

// Temporal applies a temporal operator, optionally anchored at a time term.
// Until and Since carry a second formula operand.
type Temporal struct {
	Op     TemporalOp
	Time   Term // nil when not anchored
	Body   Formula
	Second Formula // non-nil only for Until and Since
}

// NewTemporal builds a temporal formula, enforcing the binary operators'
// second operand.
func NewTemporal(op TemporalOp, time Term, body Formula, second Formula) (*Temporal, error) {
	if body == nil {
		return nil, operandError(string(op), "nil body")
	}
	switch op {
	case Until, Since:
		if second == nil {
			return nil, arityError(string(op), 2, 1)
		}
	case Always, Eventually, Next:
		if second != nil {
			return nil, arityError(string(op), 1, 2)
		}
	default:
		return nil, operandError(string(op), "unknown temporal operator")
	}
	return &Temporal{Op: op, Time: time, Body: body, Second: second}, nil
}

func (f *Temporal) isFormula() {}

func (f *Temporal) FreeVariables() VarSet {
	vs := VarSet{}
	if f.Time != nil {
		termFreeVars(f.Time, vs)
	}
	vs.AddAll(f.Body.FreeVariables())
	if f.Second != nil {
		vs.AddAll(f.Second.FreeVariables())
	}
	return vs
}

func (f *Temporal) Substitute(v Variable, t Term) Formula {
	time := f.Time
	if time != nil {
		time = time.Substitute(v, t)
	}
	body := f.Body.Substitute(v, t)
	var second Formula
	if f.Second != nil {
		second = f.Second.Substitute(v, t)
	}
	if time == f.Time && body == f.Body && second == f.Second {
		return f
	}
	return &Temporal{Op: f.Op, Time: time, Body: body, Second: second}
}

func (f *Temporal) String() string {
	s := string(f.Op)
	if f.Time != nil {
		s += "@" + f.Time.String()
	}
	if f.Second != nil {
		return s + "(" + f.Body.String() + ", " + f.Second.String() + ")"
	}
	return s + "(" + f.Body.String() + ")"
}

// ======================== Combinators ========================

// The combinators below panic on malformed input. They exist for code that
// assembles formulas from parts already known to be well formed, such as
// inference rules; external input goes through the New* constructors.

func must[F Formula](f F, err error) F {
	if err != nil {
		panic(err)
	}
	return f
}

// And conjoins two or more formulas.
func And(fs ...Formula) *Connective { return must(NewConnective(OpAnd, fs...)) }

// Or disjoins two or more formulas.
func Or(fs ...Formula) *Connective { return must(NewConnective(OpOr, fs...)) }

// Not negates a formula.
func Not(f Formula) *Connective { return must(NewConnective(OpNot, f)) }

// Implies builds p → q.
func Implies(p, q Formula) *Connective { return must(NewConnective(OpImplies, p, q)) }

// Iff builds p ↔ q.
func Iff(p, q Formula) *Connective { return must(NewConnective(OpIff, p, q)) }
