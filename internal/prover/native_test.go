package prover

import (
	"context"
	"strings"
	"testing"

	"dcec/internal/bridge"
	"dcec/internal/logic"
	"dcec/internal/proof"
	"dcec/internal/rules"
)

func newTestNative() *Native {
	return NewNative(rules.Catalog(), proof.Options{MaxSteps: 50})
}

func TestNativeProveModusPonens(t *testing.T) {
	n := newTestNative()
	p, q := logic.Atom("p"), logic.Atom("q")

	res := n.Prove(context.Background(), q, []logic.Formula{p, logic.Implies(p, q)})

	if res.Status != bridge.StatusValid || !res.IsValid {
		t.Fatalf("status = %s, is_valid = %v, want VALID", res.Status, res.IsValid)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !strings.Contains(res.Output, "q") {
		t.Errorf("rendered tree should mention the goal, got:\n%s", res.Output)
	}
}

func TestNativeProveUnderivableGoal(t *testing.T) {
	n := newTestNative()

	res := n.Prove(context.Background(), logic.Atom("r"), []logic.Formula{logic.Atom("p")})

	if res.Status != bridge.StatusUnknown {
		t.Fatalf("status = %s, want UNKNOWN", res.Status)
	}
	if res.IsValid {
		t.Error("underivable goal must not be valid")
	}
}

func TestNativeProveNilGoal(t *testing.T) {
	res := newTestNative().Prove(context.Background(), nil, nil)
	if res.Status != bridge.StatusError || res.Err == nil {
		t.Fatalf("status = %s, err = %v, want ERROR", res.Status, res.Err)
	}
}

func TestNativeCheckSatDirectContradiction(t *testing.T) {
	n := newTestNative()
	p := logic.Atom("p")

	res := n.CheckSat(context.Background(), logic.And(p, logic.Not(p)))

	if res.Status != bridge.StatusUnsatisfiable {
		t.Fatalf("status = %s, want UNSATISFIABLE", res.Status)
	}
	if !strings.Contains(res.Output, "contradiction") {
		t.Errorf("output should carry the contradiction signal, got %q", res.Output)
	}
}

func TestNativeCheckSatConflictingObligations(t *testing.T) {
	n := newTestNative()
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	pay := logic.Atom("pay")
	ob := &logic.Deontic{Op: logic.Obligation, Agent: alice, Body: pay}
	counter := &logic.Deontic{Op: logic.Obligation, Agent: alice, Body: logic.Not(pay)}

	res := n.CheckSat(context.Background(), logic.And(ob, counter))

	if res.Status != bridge.StatusUnsatisfiable {
		t.Fatalf("status = %s, want UNSATISFIABLE", res.Status)
	}
	if !strings.Contains(res.Output, "obligation_consistency") {
		t.Errorf("output should name the detecting rule, got %q", res.Output)
	}
}

// A contradiction only reachable through a derivation step must still be
// found: q follows from p, and ¬q is asserted.
func TestNativeCheckSatDerivedContradiction(t *testing.T) {
	n := newTestNative()
	p, q := logic.Atom("p"), logic.Atom("q")

	res := n.CheckSat(context.Background(), logic.And(p, logic.Implies(p, q), logic.Not(q)))

	if res.Status != bridge.StatusUnsatisfiable {
		t.Fatalf("status = %s, want UNSATISFIABLE", res.Status)
	}
}

func TestNativeCheckSatConsistentSet(t *testing.T) {
	n := newTestNative()

	res := n.CheckSat(context.Background(), logic.And(logic.Atom("p"), logic.Atom("q")))

	if res.Status != bridge.StatusUnknown {
		t.Fatalf("status = %s, want UNKNOWN: absence of a signal is not a model", res.Status)
	}
}

func TestNativeCheckSatNilFormula(t *testing.T) {
	res := newTestNative().CheckSat(context.Background(), nil)
	if res.Status != bridge.StatusError || res.Err == nil {
		t.Fatalf("status = %s, err = %v, want ERROR", res.Status, res.Err)
	}
}

func TestNativeCheckSatCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestNative().CheckSat(ctx, logic.Atom("p"))

	if res.Status != bridge.StatusTimeout {
		t.Fatalf("status = %s, want TIMEOUT", res.Status)
	}
}

func TestNativeIdentity(t *testing.T) {
	n := newTestNative()
	if n.Name() != "native" {
		t.Errorf("name = %q", n.Name())
	}
	if !n.Available() {
		t.Error("native backend is always available")
	}
}
