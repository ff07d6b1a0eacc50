package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature() (*Sort, *Predicate, *Predicate) {
	agent := NewSort("Agent", NewSort("Object", nil))
	loves := NewPredicate("loves", agent, agent)
	happy := NewPredicate("happy", agent)
	return agent, loves, happy
}

func TestNewAtomicArityMismatch(t *testing.T) {
	agent, loves, _ := testSignature()
	alice := Constant("alice", agent)

	_, err := NewAtomic(loves, alice)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindArity, verr.Kind)
	assert.Equal(t, "loves", verr.Symbol)
}

func TestNewFunctionTermArityMismatch(t *testing.T) {
	agent, _, _ := testSignature()
	mother := NewFunction("mother", agent, agent)

	_, err := NewFunctionTerm(mother)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindArity, verr.Kind)
}

func TestNewFunctionTermSortMismatch(t *testing.T) {
	object := NewSort("Object", nil)
	agent := NewSort("Agent", object)
	moment := NewSort("Moment", object)
	mother := NewFunction("mother", agent, agent)

	_, err := NewFunctionTerm(mother, Constant("noon", moment))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindSort, verr.Kind)

	// A subtype of the declared argument sort is accepted.
	self := NewSort("Self", agent)
	_, err = NewFunctionTerm(mother, Constant("me", self))
	assert.NoError(t, err)
}

func TestConnectiveArity(t *testing.T) {
	p, q := Atom("p"), Atom("q")

	_, err := NewConnective(OpNot, p, q)
	assert.Error(t, err)
	_, err = NewConnective(OpImplies, p)
	assert.Error(t, err)
	_, err = NewConnective(OpAnd, p)
	assert.Error(t, err)

	c, err := NewConnective(OpAnd, p, q, Atom("r"))
	require.NoError(t, err)
	assert.Equal(t, "(p ∧ q ∧ r)", c.String())
}

func TestCognitiveRequiresAgent(t *testing.T) {
	_, err := NewCognitive(Belief, nil, Atom("p"))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindAgent, verr.Kind)
}

func TestTemporalOperandCounts(t *testing.T) {
	p, q := Atom("p"), Atom("q")

	_, err := NewTemporal(Until, nil, p, nil)
	assert.Error(t, err)
	_, err = NewTemporal(Always, nil, p, q)
	assert.Error(t, err)

	u, err := NewTemporal(Until, nil, p, q)
	require.NoError(t, err)
	assert.Equal(t, "UNTIL(p, q)", u.String())
}

func TestSubstituteReplacesFreeOccurrences(t *testing.T) {
	agent, loves, _ := testSignature()
	x := NewVariable("x", agent)
	alice := Constant("alice", agent)

	f, err := NewAtomic(loves, NewVariableTerm(x), NewVariableTerm(x))
	require.NoError(t, err)

	got := f.Substitute(x, alice)
	assert.Equal(t, "loves(alice, alice)", got.String())
	// The original is untouched.
	assert.Equal(t, "loves(x, x)", f.String())
}

func TestQuantifierBindsVariable(t *testing.T) {
	agent, _, happy := testSignature()
	x := NewVariable("x", agent)
	body, err := NewAtomic(happy, NewVariableTerm(x))
	require.NoError(t, err)
	all, err := NewQuantified(Forall, x, body)
	require.NoError(t, err)

	free := all.FreeVariables()
	assert.False(t, free.Contains(x), "bound variable must not be free")
	assert.Empty(t, free)

	// Substituting the bound variable is a no-op.
	got := all.Substitute(x, Constant("alice", agent))
	assert.Same(t, all, got)
}

func TestSubstituteAvoidsCapture(t *testing.T) {
	agent, loves, _ := testSignature()
	x := NewVariable("x", agent)
	y := NewVariable("y", agent)
	body, err := NewAtomic(loves, NewVariableTerm(x), NewVariableTerm(y))
	require.NoError(t, err)
	all, err := NewQuantified(Forall, x, body)
	require.NoError(t, err)

	// Replacing y with x would capture x under the binder; the subtree is
	// left unchanged.
	got := all.Substitute(y, NewVariableTerm(x))
	assert.Same(t, all, got)

	// A capture-free replacement goes through.
	got = all.Substitute(y, Constant("bob", agent))
	assert.Equal(t, "∀x:Agent. loves(x, bob)", got.String())
}

func TestCanonicalStrings(t *testing.T) {
	agent, _, happy := testSignature()
	alice := Constant("alice", agent)
	x := NewVariable("x", agent)
	hx, err := NewAtomic(happy, NewVariableTerm(x))
	require.NoError(t, err)

	cases := []struct {
		name string
		f    Formula
		want string
	}{
		{"negated conjunction", Not(And(Atom("p"), Atom("q"))), "¬(p ∧ q)"},
		{"conjoined negation", And(Not(Atom("p")), Atom("q")), "(¬p ∧ q)"},
		{"implication", Implies(Atom("p"), Atom("q")), "(p → q)"},
		{"biconditional", Iff(Atom("p"), Atom("q")), "(p ↔ q)"},
		{"obligation", must(NewDeontic(Obligation, nil, Atom("p"))), "O(p)"},
		{"agent obligation", must(NewDeontic(Obligation, alice, Atom("p"))), "O[alice](p)"},
		{"belief", must(NewCognitive(Belief, alice, Atom("p"))), "B[alice](p)"},
		{"perception", must(NewCognitive(Perception, alice, Atom("p"))), "PERC[alice](p)"},
		{"necessity", must(NewModal(Necessary, Atom("p"))), "□(p)"},
		{"always", must(NewTemporal(Always, nil, Atom("p"), nil)), "ALWAYS(p)"},
		{"anchored always", must(NewTemporal(Always, Constant("t1", nil), Atom("p"), nil)), "ALWAYS@t1(p)"},
		{"universal", must(NewQuantified(Forall, x, hx)), "∀x:Agent. happy(x)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.String())
		})
	}
}

func TestStructuresWithEqualShapeShareKey(t *testing.T) {
	a := Implies(Atom("p"), Atom("q"))
	b := Implies(Atom("p"), Atom("q"))
	assert.Equal(t, Key(a), Key(b))
	assert.Equal(t, Hash(a), Hash(b))
	assert.NotEqual(t, Hash(a), Hash(Implies(Atom("q"), Atom("p"))))
}
