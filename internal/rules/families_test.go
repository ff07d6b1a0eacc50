package rules

import (
	"errors"
	"testing"

	"dcec/internal/logic"
)

func applyOne(t *testing.T, r Rule, fs []logic.Formula) []string {
	t.Helper()
	out, err := r.Apply(fs)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", r.Name(), err)
	}
	return strs(out)
}

func containsStr(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func TestCatalogShape(t *testing.T) {
	famSizes := map[string]int{
		"propositional": 10,
		"modal":         5,
		"temporal":      17,
		"deontic":       7,
		"cognitive":     13,
		"resolution":    6,
		"specialized":   9,
	}
	total := 0
	for _, fam := range Families() {
		want, ok := famSizes[fam.Name]
		if !ok {
			t.Fatalf("unexpected family %s", fam.Name)
		}
		if len(fam.Rules) != want {
			t.Errorf("family %s has %d rules, want %d", fam.Name, len(fam.Rules), want)
		}
		total += len(fam.Rules)
	}
	if total != 67 {
		t.Fatalf("catalogue has %d rules, want 67", total)
	}

	seen := map[string]bool{}
	for _, r := range Catalog() {
		if seen[r.Name()] {
			t.Errorf("duplicate rule name %s", r.Name())
		}
		seen[r.Name()] = true
	}

	if _, ok := ByName("modus_ponens"); !ok {
		t.Error("ByName failed to find modus_ponens")
	}
}

func TestObligationDistribution(t *testing.T) {
	p, q := logic.Atom("p"), logic.Atom("q")
	ob := &logic.Deontic{Op: logic.Obligation, Body: logic.And(p, q)}

	out := applyOne(t, ObligationDistribution{}, []logic.Formula{ob})
	if len(out) != 1 || out[0] != "(O(p) ∧ O(q))" {
		t.Fatalf("got %v, want [(O(p) ∧ O(q))]", out)
	}
}

func TestObligationConsistency(t *testing.T) {
	p := logic.Atom("p")
	ob := &logic.Deontic{Op: logic.Obligation, Body: p}
	obNot := &logic.Deontic{Op: logic.Obligation, Body: logic.Not(p)}

	_, err := ObligationConsistency{}.Apply([]logic.Formula{ob, obNot})
	var cerr *ContradictionError
	if !errors.As(err, &cerr) {
		t.Fatalf("O(p) with O(¬p) must signal a contradiction, got %v", err)
	}

	forbidden := &logic.Deontic{Op: logic.Prohibition, Body: p}
	_, err = ObligationConsistency{}.Apply([]logic.Formula{ob, forbidden})
	if !errors.As(err, &cerr) {
		t.Fatalf("O(p) with F(p) must signal a contradiction, got %v", err)
	}
}

func TestObligationConsistencyRespectsAgents(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	bob := logic.Constant("bob", agent)
	p := logic.Atom("p")

	fs := []logic.Formula{
		&logic.Deontic{Op: logic.Obligation, Agent: alice, Body: p},
		&logic.Deontic{Op: logic.Obligation, Agent: bob, Body: logic.Not(p)},
	}
	out, err := ObligationConsistency{}.Apply(fs)
	if err != nil {
		t.Fatalf("different agents may hold opposing norms, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("consistency check derives nothing, got %v", strs(out))
	}
}

func TestProhibitionEquivalence(t *testing.T) {
	p := logic.Atom("p")

	out := applyOne(t, ProhibitionEquivalence{}, []logic.Formula{
		&logic.Deontic{Op: logic.Prohibition, Body: p},
	})
	if !containsStr(out, "O(¬p)") {
		t.Errorf("F(p) should yield O(¬p), got %v", out)
	}

	out = applyOne(t, ProhibitionEquivalence{}, []logic.Formula{
		&logic.Deontic{Op: logic.Obligation, Body: logic.Not(p)},
	})
	if !containsStr(out, "F(p)") {
		t.Errorf("O(¬p) should yield F(p), got %v", out)
	}
}

func TestPermissionFromNonObligation(t *testing.T) {
	p := logic.Atom("p")
	f := logic.Not(&logic.Deontic{Op: logic.Obligation, Body: logic.Not(p)})

	out := applyOne(t, PermissionFromNonObligation{}, []logic.Formula{f})
	if !containsStr(out, "P(p)") {
		t.Errorf("¬O(¬p) should yield P(p), got %v", out)
	}
}

func TestBeliefDistributionMatchesAgent(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	bob := logic.Constant("bob", agent)
	p, q := logic.Atom("p"), logic.Atom("q")

	fs := []logic.Formula{
		&logic.Cognitive{Op: logic.Belief, Agent: alice, Body: logic.Implies(p, q)},
		&logic.Cognitive{Op: logic.Belief, Agent: alice, Body: p},
	}
	out := applyOne(t, BeliefDistribution{}, fs)
	if !containsStr(out, "B[alice](q)") {
		t.Fatalf("got %v, want B[alice](q)", out)
	}

	// Same premises split across two agents must not fire.
	fs[1] = &logic.Cognitive{Op: logic.Belief, Agent: bob, Body: p}
	out = applyOne(t, BeliefDistribution{}, fs)
	if len(out) != 0 {
		t.Fatalf("cross-agent distribution fired: %v", out)
	}
}

func TestKnowledgeChain(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	p := logic.Atom("p")
	k := &logic.Cognitive{Op: logic.Knowledge, Agent: alice, Body: p}

	out := applyOne(t, KnowledgeImpliesBelief{}, []logic.Formula{k})
	if !containsStr(out, "B[alice](p)") {
		t.Errorf("K[alice](p) should yield B[alice](p), got %v", out)
	}

	out = applyOne(t, KnowledgeVeridicality{}, []logic.Formula{k})
	if !containsStr(out, "p") {
		t.Errorf("knowledge is factive, got %v", out)
	}
}

func TestPerceptionImpliesKnowledge(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	p := logic.Atom("p")
	perc := &logic.Cognitive{Op: logic.Perception, Agent: alice, Body: p}

	out := applyOne(t, PerceptionImpliesKnowledge{}, []logic.Formula{perc})
	if !containsStr(out, "K[alice](p)") {
		t.Errorf("got %v", out)
	}
}

func TestIntentionRules(t *testing.T) {
	agent := logic.NewSort("Agent", nil)
	alice := logic.Constant("alice", agent)
	p := logic.Atom("p")
	intent := &logic.Cognitive{Op: logic.Intention, Agent: alice, Body: p}

	out := applyOne(t, IntentionCommitment{}, []logic.Formula{intent})
	if !containsStr(out, "G[alice](p)") {
		t.Errorf("intention should commit to the goal, got %v", out)
	}

	out = applyOne(t, IntentionPersistence{}, []logic.Formula{intent})
	if !containsStr(out, "B[alice](EVENTUALLY(p))") {
		t.Errorf("got %v", out)
	}
}

func TestModalRules(t *testing.T) {
	p := logic.Atom("p")

	out := applyOne(t, NecessityElimination{}, []logic.Formula{box(p)})
	if !containsStr(out, "p") {
		t.Errorf("□(p) should yield p, got %v", out)
	}

	out = applyOne(t, ModalDuality{}, []logic.Formula{logic.Not(box(logic.Not(p)))})
	if !containsStr(out, "◇(p)") {
		t.Errorf("¬□(¬p) should yield ◇(p), got %v", out)
	}

	out = applyOne(t, NecessityDistribution{}, []logic.Formula{box(logic.Implies(p, logic.Atom("q")))})
	if !containsStr(out, "(□(p) → □(q))") {
		t.Errorf("got %v", out)
	}
}

func TestTemporalRules(t *testing.T) {
	p, q := logic.Atom("p"), logic.Atom("q")
	always := temp(logic.Always, nil, p)

	out := applyOne(t, AlwaysElimination{}, []logic.Formula{always})
	if !containsStr(out, "p") {
		t.Errorf("ALWAYS(p) should yield p, got %v", out)
	}

	out = applyOne(t, AlwaysImpliesEventually{}, []logic.Formula{always})
	if !containsStr(out, "EVENTUALLY(p)") {
		t.Errorf("got %v", out)
	}

	until := &logic.Temporal{Op: logic.Until, Body: p, Second: q}
	out = applyOne(t, UntilUnfolding{}, []logic.Formula{until})
	if !containsStr(out, "(q ∨ (p ∧ NEXT(UNTIL(p, q))))") {
		t.Errorf("got %v", out)
	}

	out = applyOne(t, UntilImpliesEventually{}, []logic.Formula{until})
	if !containsStr(out, "EVENTUALLY(q)") {
		t.Errorf("got %v", out)
	}

	fs := []logic.Formula{
		temp(logic.Always, nil, logic.Implies(p, q)),
		temp(logic.Always, nil, p),
	}
	out = applyOne(t, AlwaysModusPonens{}, fs)
	if !containsStr(out, "ALWAYS(q)") {
		t.Errorf("got %v", out)
	}
}

func TestRulesSilentOnNonMatchingInput(t *testing.T) {
	// Every rule must tolerate arbitrary premises without erroring; only the
	// contradiction detectors may return an error, and none on this input.
	fs := []logic.Formula{logic.Atom("p"), logic.Implies(logic.Atom("q"), logic.Atom("r"))}
	for _, r := range Catalog() {
		if _, err := r.Apply(fs); err != nil {
			t.Errorf("rule %s errored on benign input: %v", r.Name(), err)
		}
	}
}
