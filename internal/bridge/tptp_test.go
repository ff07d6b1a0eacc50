package bridge

import (
	"strings"
	"testing"

	"dcec/internal/logic"
)

func TestWriteTPTPConjectureProblem(t *testing.T) {
	p, q := logic.Atom("p"), logic.Atom("q")

	out := WriteTPTP("demo", q, []logic.Formula{p, logic.Implies(p, q)})

	want := "% Problem: demo\n" +
		"fof(axiom_1, axiom, p).\n" +
		"fof(axiom_2, axiom, (p => q)).\n" +
		"fof(goal, conjecture, q).\n"
	if out != want {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
}

func TestWriteTPTPSkipsNilAxioms(t *testing.T) {
	q := logic.Atom("q")

	out := WriteTPTP("holes", q, []logic.Formula{nil, logic.Atom("p"), nil})

	if !strings.Contains(out, "fof(axiom_1, axiom, p).") {
		t.Fatalf("surviving axiom must be renumbered from 1:\n%s", out)
	}
	if strings.Contains(out, "axiom_2") {
		t.Fatalf("nil axioms must not leave gaps:\n%s", out)
	}
}

func TestWriteTPTPSatHasNoConjecture(t *testing.T) {
	f := logic.And(logic.Atom("p"), logic.Not(logic.Atom("p")))

	out := WriteTPTPSat("consistency", f)

	want := "% Problem: consistency\n" +
		"fof(axiom_1, axiom, (p & ~(p))).\n"
	if out != want {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
}

func TestTPTPConnectiveSpellings(t *testing.T) {
	p, q := logic.Atom("p"), logic.Atom("q")

	cases := []struct {
		f    logic.Formula
		want string
	}{
		{logic.And(p, q), "(p & q)"},
		{logic.Or(p, q), "(p | q)"},
		{logic.Not(p), "~(p)"},
		{logic.Implies(p, q), "(p => q)"},
		{logic.Iff(p, q), "(p <=> q)"},
		{logic.And(p, q, logic.Atom("r")), "(p & q & r)"},
	}
	for _, tc := range cases {
		if got := tptpFormula(tc.f); got != tc.want {
			t.Errorf("%s: got %s, want %s", logic.Key(tc.f), got, tc.want)
		}
	}
}

func TestTPTPQuantifiersCapitalizeVariables(t *testing.T) {
	person := logic.NewSort("Person", nil)
	x := logic.NewVariable("x", person)
	mortal := logic.NewPredicate("mortal", person)
	body, err := logic.NewAtomic(mortal, logic.NewVariableTerm(x))
	if err != nil {
		t.Fatal(err)
	}

	all, err := logic.NewQuantified(logic.Forall, x, body)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tptpFormula(all), "! [X] : (mortal(X))"; got != want {
		t.Errorf("forall: got %s, want %s", got, want)
	}

	some, err := logic.NewQuantified(logic.Exists, x, body)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tptpFormula(some), "? [X] : (mortal(X))"; got != want {
		t.Errorf("exists: got %s, want %s", got, want)
	}
}

// Wrapper operators carry their canonical body text as a quoted atom, so
// structurally equal wrappers collapse to one symbol and everything else
// stays out of the prover's way.
func TestTPTPWrappersQuoteTheirBodies(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)

	ob := &logic.Deontic{
		Op:    logic.Obligation,
		Agent: alice,
		Body:  logic.And(logic.Atom("pay"), logic.Atom("report")),
	}
	if got, want := tptpFormula(ob), "obligated('(pay ∧ report)')"; got != want {
		t.Errorf("deontic: got %s, want %s", got, want)
	}

	bel := &logic.Cognitive{Op: logic.Belief, Agent: alice, Body: logic.Atom("safe")}
	if got, want := tptpFormula(bel), "believes('safe')"; got != want {
		t.Errorf("cognitive: got %s, want %s", got, want)
	}

	until := &logic.Temporal{Op: logic.Until, Body: logic.Atom("p"), Second: logic.Atom("q")}
	if got, want := tptpFormula(until), "until('p','q')"; got != want {
		t.Errorf("temporal: got %s, want %s", got, want)
	}

	nec := &logic.Modal{Op: logic.Necessary, Body: logic.Atom("p")}
	if got, want := tptpFormula(nec), "necessarily('p')"; got != want {
		t.Errorf("modal: got %s, want %s", got, want)
	}
}

func TestTPTPTermRendering(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	loves := logic.NewPredicate("loves", agent, agent)
	atom, err := logic.NewAtomic(loves, logic.Constant("alice", agent), logic.Constant("bob", agent))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tptpFormula(atom), "loves(alice,bob)"; got != want {
		t.Errorf("constants: got %s, want %s", got, want)
	}
}

func TestTPTPSymbolQuoting(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"p", "p"},
		{"has_goal2", "has_goal2"},
		{"Likes", "'Likes'"},
		{"dash-ed", "'dash-ed'"},
		{"it's", `'it\'s'`},
	}
	for _, tc := range cases {
		if got := tptpAtomName(tc.name); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestTPTPVariableMangling(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"x", "X"},
		{"agent1", "Agent1"},
		{"T", "T"},
		{"_x", "V_x"},
	}
	for _, tc := range cases {
		if got := tptpVar(tc.name); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
