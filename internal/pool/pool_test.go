package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/validate"
)

// funcStrategy adapts a plain function for pool tests.
type funcStrategy struct {
	fn func(ctx context.Context, file catalog.CandidateFile) validate.Outcome
}

func (s *funcStrategy) Name() string { return "test" }
func (s *funcStrategy) Validate(ctx context.Context, file catalog.CandidateFile) validate.Outcome {
	return s.fn(ctx, file)
}

func candidates(n int) []catalog.CandidateFile {
	files := make([]catalog.CandidateFile, n)
	for i := range files {
		files[i] = catalog.CandidateFile{Path: fmt.Sprintf("/media/file-%03d.mkv", i)}
	}
	return files
}

func TestRunAll_OneOutcomePerFile(t *testing.T) {
	files := candidates(50)
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		return validate.Outcome{Path: f.Path, Verdict: validate.Valid}
	}}

	outcomes := RunAll(context.Background(), files, strategy, 8, nil)
	if len(outcomes) != len(files) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(files))
	}

	seen := map[string]int{}
	for _, out := range outcomes {
		seen[out.Path]++
	}
	for _, f := range files {
		if seen[f.Path] != 1 {
			t.Errorf("file %s has %d outcomes, want exactly 1", f.Path, seen[f.Path])
		}
	}
}

func TestRunAll_BoundsConcurrency(t *testing.T) {
	const workers = 4
	var inFlight, peak atomic.Int64
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return validate.Outcome{Path: f.Path, Verdict: validate.Valid}
	}}

	RunAll(context.Background(), candidates(40), strategy, workers, nil)
	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency = %d, want <= %d", got, workers)
	}
}

func TestRunAll_PanicBecomesErrorOutcome(t *testing.T) {
	files := candidates(3)
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		if f.Path == files[1].Path {
			panic("bad index")
		}
		return validate.Outcome{Path: f.Path, Verdict: validate.Valid}
	}}

	outcomes := RunAll(context.Background(), files, strategy, 2, nil)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	var errored int
	for _, out := range outcomes {
		if out.Verdict == validate.Error {
			errored++
			if out.Path != files[1].Path {
				t.Errorf("error outcome for %s, want %s", out.Path, files[1].Path)
			}
		}
	}
	if errored != 1 {
		t.Errorf("got %d error outcomes, want 1 (siblings must survive a panic)", errored)
	}
}

func TestRunAll_CancellationStillYieldsAllOutcomes(t *testing.T) {
	files := candidates(20)
	ctx, cancel := context.WithCancel(context.Background())

	var started atomic.Int64
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		if started.Add(1) == 3 {
			cancel()
		}
		select {
		case <-ctx.Done():
			return validate.Outcome{Path: f.Path, Verdict: validate.Error, Detail: "scan cancelled"}
		case <-time.After(10 * time.Millisecond):
			return validate.Outcome{Path: f.Path, Verdict: validate.Valid}
		}
	}}

	done := make(chan []validate.Outcome, 1)
	go func() { done <- RunAll(ctx, files, strategy, 2, nil) }()

	select {
	case outcomes := <-done:
		if len(outcomes) != len(files) {
			t.Errorf("got %d outcomes, want %d even when cancelled", len(outcomes), len(files))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("RunAll did not return after cancellation")
	}
}

func TestRunAll_OnDoneSeesEveryOutcome(t *testing.T) {
	files := candidates(25)
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		return validate.Outcome{Path: f.Path, Verdict: validate.Valid}
	}}

	// onDone runs on the collector goroutine, so plain counters are safe; the
	// mutex here only guards against the test reading before RunAll returns.
	var mu sync.Mutex
	var notified int
	RunAll(context.Background(), files, strategy, 5, func(validate.Outcome) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	mu.Lock()
	defer mu.Unlock()
	if notified != len(files) {
		t.Errorf("onDone called %d times, want %d", notified, len(files))
	}
}

func TestRunAll_NoFiles(t *testing.T) {
	strategy := &funcStrategy{fn: func(ctx context.Context, f catalog.CandidateFile) validate.Outcome {
		t.Error("strategy invoked with no files")
		return validate.Outcome{}
	}}
	outcomes := RunAll(context.Background(), nil, strategy, 4, nil)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(outcomes))
	}
}
