package bridge

import (
	"strings"
	"testing"

	"dcec/internal/logic"
)

func TestWriteSMTLIBScriptShape(t *testing.T) {
	p, q := logic.Atom("p"), logic.Atom("q")

	out := WriteSMTLIB("demo", q, []logic.Formula{p, logic.Implies(p, q)})

	want := "; Problem: demo\n" +
		"(set-logic QF_UF)\n" +
		"(declare-const p Bool)\n" +
		"(declare-const q Bool)\n" +
		"(assert p)\n" +
		"(assert (=> p q))\n" +
		"(assert (not q))\n" +
		"(check-sat)\n" +
		"(get-model)\n"
	if out != want {
		t.Fatalf("unexpected script:\n%s", out)
	}
}

func TestWriteSMTLIBQuotesWrapperSymbols(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	ob := &logic.Deontic{Op: logic.Obligation, Agent: alice, Body: logic.Atom("pay")}
	bel := &logic.Cognitive{Op: logic.Belief, Agent: alice, Body: logic.Atom("audited")}

	out := WriteSMTLIB("norms", bel, []logic.Formula{ob, logic.Implies(ob, bel)})

	for _, want := range []string{
		"(declare-const |obligated(pay)| Bool)",
		"(declare-const |believes(audited)| Bool)",
		"(assert (=> |obligated(pay)| |believes(audited)|))",
		"(assert (not |believes(audited)|))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "declare-const") != 2 {
		t.Errorf("each abstraction unit is declared once:\n%s", out)
	}
}

func TestSMTSymbolQuoting(t *testing.T) {
	cases := []struct{ in, want string }{
		{"p", "p"},
		{"Likes", "Likes"},
		{"x_1", "x_1"},
		{"1x", "|1x|"},
		{"obligated(p)", "|obligated(p)|"},
	}
	for _, tc := range cases {
		if got := smtSymbol(tc.in); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.in, got, tc.want)
		}
	}
}
