// Package runner executes one external command with a hard wall-clock
// timeout, captured output, and process-group termination so hung decoders
// cannot outlive the scan.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout is returned when the invocation exceeded its wall-clock bound.
// The process group has already been killed when Run returns it.
var ErrTimeout = errors.New("process timed out")

// SpawnError means the command could not be started at all (missing binary,
// OS-level spawn failure). This is a configuration problem, not evidence
// that the file under validation is corrupt.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("spawn %s: %v", e.Name, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// Result holds the outcome of a completed invocation. A non-zero ExitCode is
// reported here with a nil error: interpreting it is the caller's job.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// waitDelay bounds how long Run waits for I/O pipes to drain after the
// process group has been killed.
const waitDelay = 5 * time.Second

// Run executes name with args, capturing stdout/stderr (never inherited, so
// the caller's terminal stays clean). The process is placed in its own group
// and the whole group is killed on timeout or when ctx is cancelled.
//
// Error contract: nil for any completed run (including non-zero exit),
// ErrTimeout past the bound, ctx.Err() on scan cancellation, *SpawnError
// when the process never started.
func Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killGroup(cmd) }
	cmd.WaitDelay = waitDelay

	err := cmd.Run()

	res := Result{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case err == nil:
		res.ExitCode = 0
		return res, nil
	case ctx.Err() != nil:
		return res, ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return res, ErrTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, &SpawnError{Name: name, Err: err}
}

// Tail returns the last n lines of s, trimmed. Used to keep stderr excerpts
// in reports short.
func Tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}
