package bridge

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	// runTimeoutBuffer is the grace the hard subprocess deadline adds on top
	// of the prover's own resource limit, so the prover can report ResourceOut
	// itself before the process is killed.
	runTimeoutBuffer = 2 * time.Second

	// maxProverOutput caps captured stdout+stderr per run.
	maxProverOutput = 1 << 20
)

// runResult is the raw outcome of one prover subprocess.
type runResult struct {
	output    string
	truncated bool
	elapsed   time.Duration
	timedOut  bool
	exitCode  int
	err       error
}

// runProver writes the problem to a temp file, runs the binary on it, and
// collects combined output. The file is removed regardless of outcome. A
// non-zero exit is not an error: provers routinely signal their verdict
// through the exit code and leave the real answer on stdout.
func runProver(ctx context.Context, binary string, args []string, problem string, timeout time.Duration) runResult {
	f, err := os.CreateTemp("", "dcec-*.p")
	if err != nil {
		return runResult{err: err}
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.WriteString(problem); err != nil {
		f.Close()
		return runResult{err: err}
	}
	if err := f.Close(); err != nil {
		return runResult{err: err}
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout+runTimeoutBuffer)
	defer cancel()

	cmd := exec.CommandContext(execCtx, binary, append(args, path)...)
	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, max: maxProverOutput}
	cmd.Stdout = lw
	cmd.Stderr = lw

	start := time.Now()
	runErr := cmd.Run()
	res := runResult{
		output:    buf.String(),
		truncated: lw.truncated,
		elapsed:   time.Since(start),
	}

	if runErr != nil {
		switch {
		case execCtx.Err() == context.DeadlineExceeded:
			res.timedOut = true
		case execCtx.Err() == context.Canceled:
			res.err = context.Canceled
		default:
			if exitErr, ok := runErr.(*exec.ExitError); ok {
				res.exitCode = exitErr.ExitCode()
			} else {
				res.err = runErr
			}
		}
	}
	return res
}

// limitedWriter is an io.Writer that limits total bytes written.
type limitedWriter struct {
	w         io.Writer
	max       int64
	written   int64
	truncated bool
	discarded int64
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)

	if lw.written >= lw.max {
		lw.truncated = true
		lw.discarded += int64(n)
		return n, nil // Pretend we wrote it
	}

	remaining := lw.max - lw.written
	if int64(n) > remaining {
		// Partial write
		lw.truncated = true
		toWrite := p[:remaining]
		lw.discarded += int64(n) - remaining
		written, err := lw.w.Write(toWrite)
		lw.written += int64(written)
		return n, err // Return original length to avoid "short write" errors
	}

	written, err := lw.w.Write(p)
	lw.written += int64(written)
	return written, err
}
