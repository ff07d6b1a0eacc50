package bridge

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"dcec/internal/logic"
)

func TestSZSStatusExtraction(t *testing.T) {
	out := "% comment\n% SZS status Theorem for problem_x\n% done\n"
	word, ok := szsStatus(out)
	if !ok || word != "Theorem" {
		t.Fatalf("got (%q, %v)", word, ok)
	}

	if _, ok := szsStatus("nothing to see"); ok {
		t.Fatal("output without an SZS line must report absence")
	}
}

func TestClassifyProve(t *testing.T) {
	cases := []struct {
		output string
		want   ProofStatus
	}{
		{"# SZS status Theorem", StatusValid},
		{"% SZS status Unsatisfiable for prob", StatusValid},
		{"# SZS status ContradictoryAxioms", StatusValid},
		{"# SZS status CounterSatisfiable", StatusInvalid},
		{"# SZS status Satisfiable", StatusInvalid},
		{"# SZS status ResourceOut", StatusTimeout},
		{"% SZS status Timeout", StatusTimeout},
		{"# SZS status GaveUp", StatusUnknown},
		{"# Proof found!", StatusValid},
		{"Refutation found. Thanks to Tanya!", StatusValid},
		{"# No proof found!", StatusUnknown},
		{"CPU time limit exceeded, terminating", StatusTimeout},
		{"", StatusUnknown},
	}
	for _, tc := range cases {
		if got := classifyProve(tc.output); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.output, got, tc.want)
		}
	}
}

func TestClassifySat(t *testing.T) {
	cases := []struct {
		output string
		want   ProofStatus
	}{
		{"# SZS status Satisfiable", StatusSatisfiable},
		{"# SZS status CounterSatisfiable", StatusSatisfiable},
		{"# SZS status Unsatisfiable", StatusUnsatisfiable},
		{"# SZS status ContradictoryAxioms", StatusUnsatisfiable},
		{"# SZS status ResourceOut", StatusTimeout},
		{"# Proof found!", StatusUnsatisfiable},
		{"mysterious output", StatusUnknown},
	}
	for _, tc := range cases {
		if got := classifySat(tc.output); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.output, got, tc.want)
		}
	}
}

// fakeATP stands in a shell one-liner for the prover binary, so the whole
// temp-file, subprocess and classification path runs without a real prover
// installed.
func fakeATP(t *testing.T, script string) *ATPProver {
	t.Helper()
	return &ATPProver{
		name:    "fake",
		binary:  "sh",
		timeout: 2 * time.Second,
		logger:  zap.NewNop(),
		buildArgs: func(seconds int) []string {
			return []string{"-c", script}
		},
	}
}

func TestATPProveClassifiesSubprocessVerdict(t *testing.T) {
	p := fakeATP(t, "echo SZS status Theorem")

	res := p.Prove(context.Background(), logic.Atom("q"), []logic.Formula{logic.Atom("p")})

	if res.Status != StatusValid || !res.IsValid {
		t.Fatalf("got %+v", res)
	}
	if !strings.Contains(res.Output, "SZS status Theorem") {
		t.Fatalf("raw output must be preserved: %q", res.Output)
	}
}

func TestATPCheckSatClassifiesSubprocessVerdict(t *testing.T) {
	p := fakeATP(t, "echo SZS status Satisfiable")

	res := p.CheckSat(context.Background(), logic.Atom("p"))

	if res.Status != StatusSatisfiable {
		t.Fatalf("got %+v", res)
	}
}

func TestATPReceivesRenderedProblem(t *testing.T) {
	p := fakeATP(t, `cat "$0"`)

	res := p.Prove(context.Background(), logic.Atom("q"), []logic.Formula{logic.Atom("p")})

	if !strings.Contains(res.Output, "fof(goal, conjecture, q).") {
		t.Fatalf("rendered problem must reach the prover: %q", res.Output)
	}
	if res.Status != StatusUnknown {
		t.Fatalf("echoed problem text is no verdict, got %s", res.Status)
	}
}

func TestATPMissingBinaryIsAnError(t *testing.T) {
	p := NewEProver("/definitely/not/here/eprover", time.Second, nil)
	if p.Available() {
		t.Skip("unexpected eprover at test path")
	}

	res := p.Prove(context.Background(), logic.Atom("q"), nil)

	if res.Status != StatusError || res.Err == nil {
		t.Fatalf("got %+v", res)
	}
}

func TestATPNilGoalIsAnError(t *testing.T) {
	p := fakeATP(t, "echo SZS status Theorem")

	res := p.Prove(context.Background(), nil, nil)

	if res.Status != StatusError || res.Err == nil {
		t.Fatalf("got %+v", res)
	}
}

func TestEProverDefaults(t *testing.T) {
	p := NewEProver("", 0, nil)

	if p.Name() != "eprover" || p.binary != "eprover" || p.timeout != DefaultATPTimeout {
		t.Fatalf("got name=%s binary=%s timeout=%s", p.Name(), p.binary, p.timeout)
	}
	if got := strings.Join(p.buildArgs(5), " "); got != "--auto --cpu-limit=5" {
		t.Fatalf("args = %q", got)
	}
}

func TestVampireDefaults(t *testing.T) {
	p := NewVampire("", 0, nil)

	if p.Name() != "vampire" || p.binary != "vampire" || p.timeout != DefaultATPTimeout {
		t.Fatalf("got name=%s binary=%s timeout=%s", p.Name(), p.binary, p.timeout)
	}
	if got := strings.Join(p.buildArgs(7), " "); got != "--time_limit 7" {
		t.Fatalf("args = %q", got)
	}
}
