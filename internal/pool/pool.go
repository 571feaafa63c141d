// Package pool fans candidate files out to a validation strategy under a
// bounded concurrency limit and collects exactly one outcome per file.
package pool

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/validate"
)

// RunAll validates every file with at most workers validations in flight.
// Each validation may spawn a heavyweight decoder process, so the bound is
// the binding resource control for CPU, I/O, and the OS process table.
//
// Completion order is unconstrained, but RunAll returns exactly one outcome
// per submitted file: cancelled files get verdict=Error ("scan cancelled")
// and a panicking task is folded into verdict=Error for that one file. All
// outcomes funnel through a single collector goroutine; onDone (optional) is
// called from that goroutine as each outcome lands.
func RunAll(ctx context.Context, files []catalog.CandidateFile, strategy validate.Strategy, workers int, onDone func(validate.Outcome)) []validate.Outcome {
	if workers < 1 {
		workers = 1
	}

	results := make(chan validate.Outcome, workers)
	collected := make(chan []validate.Outcome, 1)
	go func() {
		outcomes := make([]validate.Outcome, 0, len(files))
		for out := range results {
			outcomes = append(outcomes, out)
			if onDone != nil {
				onDone(out)
			}
		}
		collected <- outcomes
	}()

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	for _, file := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Scan cancelled: the remaining files still get explicit
			// outcomes, never silent omission.
			results <- validate.Outcome{
				Path:    file.Path,
				Verdict: validate.Error,
				Stage:   strategy.Name(),
				Detail:  "scan cancelled",
			}
			continue
		}
		wg.Add(1)
		go func(f catalog.CandidateFile) {
			defer wg.Done()
			defer sem.Release(1)
			results <- run(ctx, strategy, f)
		}(file)
	}

	wg.Wait()
	close(results)
	return <-collected
}

// run executes one validation, converting a panic into an Error verdict so a
// single bad file cannot take down sibling tasks or the pool.
func run(ctx context.Context, strategy validate.Strategy, file catalog.CandidateFile) (out validate.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = validate.Outcome{
				Path:    file.Path,
				Verdict: validate.Error,
				Stage:   strategy.Name(),
				Detail:  fmt.Sprintf("validation panic: %v", r),
			}
		}
	}()
	return strategy.Validate(ctx, file)
}
