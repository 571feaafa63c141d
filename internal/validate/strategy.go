package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/config"
	"github.com/backmassage/scanmaster/internal/runner"
)

// Invoker abstracts external process execution so tests can count and script
// invocations without spawning anything. The production implementation is
// [runner.Run].
type Invoker interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (runner.Result, error)
}

type execInvoker struct{}

func (execInvoker) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (runner.Result, error) {
	return runner.Run(ctx, timeout, name, args...)
}

// Strategy is the polymorphic unit of validation work.
type Strategy interface {
	// Name is a short label for logs ("metadata", "playback", "indepth").
	Name() string
	// Validate checks one file. It never panics and never returns an error:
	// every failure mode is folded into the Outcome, so one malformed file
	// cannot abort the scan.
	Validate(ctx context.Context, file catalog.CandidateFile) Outcome
}

// Options parameterize strategy construction.
type Options struct {
	Decoder config.DecoderMode
	Timeout time.Duration // Per external invocation.
	Invoker Invoker       // nil = real process execution.
}

// New builds the strategy for mode. An invalid decoder or validation mode is
// a configuration error and fails here, before any file is touched; there is
// no silent fallback.
func New(mode config.ValidationMode, opts Options) (Strategy, error) {
	switch opts.Decoder {
	case config.DecoderSoftware, config.DecoderHardware:
		// valid
	default:
		return nil, fmt.Errorf("invalid decoder mode %q", opts.Decoder)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Invoker == nil {
		opts.Invoker = execInvoker{}
	}

	switch mode {
	case config.ValidateMetadata:
		return &MetadataCheck{opts: opts}, nil
	case config.ValidatePlayback:
		return &SinglePointPlayback{opts: opts}, nil
	case config.ValidateInDepth:
		return &MultiPointPlayback{opts: opts}, nil
	}
	return nil, fmt.Errorf("invalid validation mode %q", mode)
}

// stderrTailLines bounds how much captured stderr survives into a report row.
const stderrTailLines = 5

// precheck rejects missing and zero-byte files before any process is
// spawned: an external prober pointed at an empty file is wasted work and
// may hang. Returns (outcome, true) when the fast path applies.
func precheck(file catalog.CandidateFile) (Outcome, bool) {
	fi, err := os.Stat(file.Path)
	if err != nil {
		return corrupt(file.Path, StageExistence, "file does not exist"), true
	}
	if fi.Size() == 0 {
		return corrupt(file.Path, StageExistence, "file is empty"), true
	}
	return Outcome{}, false
}

// classify folds a runner result into an Outcome for the given stage.
// A completed run with exit 0 yields (Outcome{}, false): the caller either
// returns Valid or moves on to its next probe.
func classify(file catalog.CandidateFile, stage string, res runner.Result, err error) (Outcome, bool) {
	switch {
	case err == nil && res.ExitCode == 0:
		return Outcome{}, false
	case err == nil:
		return corrupt(file.Path, stage, runner.Tail(res.Stderr, stderrTailLines)), true
	case errors.Is(err, runner.ErrTimeout):
		return timedOut(file.Path, stage), true
	case errors.Is(err, context.Canceled):
		return failed(file.Path, stage, "scan cancelled"), true
	default:
		// Spawn failure or other orchestration error.
		return failed(file.Path, stage, err.Error()), true
	}
}
