package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualStructural(t *testing.T) {
	agent := NewSort("Agent", nil)
	alice := Constant("alice", agent)

	b1, err := NewCognitive(Belief, alice, Implies(Atom("p"), Atom("q")))
	require.NoError(t, err)
	b2, err := NewCognitive(Belief, Constant("alice", agent), Implies(Atom("p"), Atom("q")))
	require.NoError(t, err)
	k, err := NewCognitive(Knowledge, alice, Implies(Atom("p"), Atom("q")))
	require.NoError(t, err)

	assert.True(t, Equal(b1, b2))
	assert.False(t, Equal(b1, k), "operator must match")
	assert.False(t, Equal(b1, Atom("p")), "variant must match")
}

func TestEqualDistinguishesVariableSorts(t *testing.T) {
	agent := NewSort("Agent", nil)
	moment := NewSort("Moment", nil)
	p := NewPredicate("p", agent)
	q := NewPredicate("q", moment)

	xa, err := NewAtomic(p, NewVariableTerm(NewVariable("x", agent)))
	require.NoError(t, err)
	xm, err := NewAtomic(q, NewVariableTerm(NewVariable("x", moment)))
	require.NoError(t, err)

	// Canonical strings print bare variable names; structural equality still
	// tells the two x's apart.
	assert.Equal(t, "x", xa.Args[0].String())
	assert.Equal(t, "x", xm.Args[0].String())
	assert.False(t, EqualTerms(xa.Args[0], xm.Args[0]))
}

func TestEqualTemporalSecondOperand(t *testing.T) {
	u1, err := NewTemporal(Until, nil, Atom("p"), Atom("q"))
	require.NoError(t, err)
	u2, err := NewTemporal(Until, nil, Atom("p"), Atom("q"))
	require.NoError(t, err)
	u3, err := NewTemporal(Until, nil, Atom("p"), Atom("r"))
	require.NoError(t, err)

	assert.True(t, Equal(u1, u2))
	assert.False(t, Equal(u1, u3))
}
