package logic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRendersCanonically(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"p", "p"},
		{"(and p q)", "(p ∧ q)"},
		{"(implies p (or q r))", "(p → (q ∨ r))"},
		{"(not (and p q))", "¬(p ∧ q)"},
		{"(iff p q)", "(p ↔ q)"},
		{"(O p)", "O(p)"},
		{"(O alice p)", "O[alice](p)"},
		{"(F (harm alice))", "F(harm(alice))"},
		{"(B alice (implies p q))", "B[alice]((p → q))"},
		{"(K bob p)", "K[bob](p)"},
		{"(box p)", "□(p)"},
		{"(diamond (not p))", "◇(¬p)"},
		{"(always p)", "ALWAYS(p)"},
		{"(until p q)", "UNTIL(p, q)"},
		{"(forall (x Agent) (happy x))", "∀x:Agent. happy(x)"},
		{"(exists (x Agent) (and (happy x) (wise x)))", "∃x:Agent. (happy(x) ∧ wise(x))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			ns := NewNamespace()
			f, err := Parse(ns, tc.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, f.String()); diff != "" {
				t.Errorf("canonical form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBinderScopesVariable(t *testing.T) {
	ns := NewNamespace()
	f, err := Parse(ns, "(forall (x Agent) (exists (y Agent) (loves x y)))")
	require.NoError(t, err)
	assert.Equal(t, "∀x:Agent. ∃y:Agent. loves(x, y)", f.String())
	assert.Empty(t, f.FreeVariables())
}

func TestParseDeclaredSymbols(t *testing.T) {
	ns := NewNamespace()
	_, err := ns.DeclarePredicate("holds", SortFluent, SortMoment)
	require.NoError(t, err)
	_, err = ns.DeclareFunction("alive", SortFluent)
	require.NoError(t, err)
	_, err = ns.DeclareFunction("t0", SortMoment)
	require.NoError(t, err)

	f, err := Parse(ns, "(holds alive t0)")
	require.NoError(t, err)
	assert.Equal(t, "holds(alive, t0)", f.String())

	// In a fresh namespace every symbol is auto-declared with Object sorts.
	_, err = Parse(NewNamespace(), "(holds alive t0)")
	assert.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	ns := NewNamespace()
	for _, src := range []string{
		"",
		"(and p)",
		"(implies p)",
		"(forall x (p x))",
		"(B p)",
		"(until p)",
		"(and p q",
		"p q",
	} {
		_, err := Parse(ns, src)
		assert.Error(t, err, "source %q should not parse", src)
	}
}
