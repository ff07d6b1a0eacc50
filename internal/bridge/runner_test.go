package bridge

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunProverCapturesOutputAndExitCode(t *testing.T) {
	res := runProver(context.Background(), "sh", []string{"-c", "echo hello; exit 3"}, "ignored", time.Second)

	if res.err != nil {
		t.Fatalf("nonzero exit is not an infrastructure error: %v", res.err)
	}
	if strings.TrimSpace(res.output) != "hello" {
		t.Fatalf("output = %q", res.output)
	}
	if res.exitCode != 3 {
		t.Fatalf("exitCode = %d, want 3", res.exitCode)
	}
	if res.timedOut {
		t.Fatal("run did not time out")
	}
}

func TestRunProverDeliversProblemFile(t *testing.T) {
	res := runProver(context.Background(), "sh", []string{"-c", `cat "$0"`}, "fof(goal, conjecture, q).", time.Second)

	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.output, "fof(goal, conjecture, q).") {
		t.Fatalf("problem text did not reach the subprocess: %q", res.output)
	}
}

func TestRunProverKillsOnHardDeadline(t *testing.T) {
	start := time.Now()
	res := runProver(context.Background(), "sh", []string{"-c", "sleep 30"}, "", 50*time.Millisecond)

	if !res.timedOut {
		t.Fatalf("expected a timeout, got %+v", res)
	}
	if res.err != nil {
		t.Fatalf("a timeout is a verdict, not an error: %v", res.err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("kill took too long: %s", elapsed)
	}
}

func TestRunProverCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := runProver(ctx, "sh", []string{"-c", "echo hi"}, "", time.Second)

	if res.err == nil {
		t.Fatal("canceled context must surface as an error")
	}
}

func TestRunProverMissingBinary(t *testing.T) {
	res := runProver(context.Background(), "no-such-prover-binary-zz", nil, "", time.Second)

	if res.err == nil {
		t.Fatal("missing binary must surface as an error")
	}
}

func TestLimitedWriterTruncates(t *testing.T) {
	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, max: 10}

	n, err := lw.Write([]byte("0123456789abcdef"))
	if err != nil || n != 16 {
		t.Fatalf("Write = (%d, %v), want (16, nil)", n, err)
	}
	n, err = lw.Write([]byte("more"))
	if err != nil || n != 4 {
		t.Fatalf("Write = (%d, %v), want (4, nil)", n, err)
	}

	if buf.String() != "0123456789" {
		t.Fatalf("buffer = %q", buf.String())
	}
	if !lw.truncated || lw.discarded != 10 {
		t.Fatalf("truncated=%v discarded=%d", lw.truncated, lw.discarded)
	}
}
