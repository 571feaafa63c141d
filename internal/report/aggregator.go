// Package report collects validation outcomes under concurrency and renders
// the final per-section report and CSV table.
package report

import (
	"sort"
	"sync"
	"time"

	"github.com/backmassage/scanmaster/internal/validate"
)

// Aggregator is the one piece of shared mutable state in the scan: pool
// workers record outcomes concurrently, a mutex keeps them from being lost
// or duplicated.
type Aggregator struct {
	mu       sync.Mutex
	section  string
	bytes    int64
	started  time.Time
	outcomes []validate.Outcome
}

// New creates an Aggregator for one section and starts its wall clock.
// totalBytes is the summed size of the candidate files, carried through to
// the report for the summary line.
func New(section string, totalBytes int64) *Aggregator {
	return &Aggregator{
		section: section,
		bytes:   totalBytes,
		started: time.Now(),
	}
}

// Record stores one outcome. Safe for concurrent use.
func (a *Aggregator) Record(out validate.Outcome) {
	a.mu.Lock()
	a.outcomes = append(a.outcomes, out)
	a.mu.Unlock()
}

// Finalize builds the immutable report. Only valid once all submitted tasks
// have completed; outcomes are sorted by path so reports are deterministic
// regardless of completion order.
func (a *Aggregator) Finalize() *Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	outcomes := make([]validate.Outcome, len(a.outcomes))
	copy(outcomes, a.outcomes)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Path < outcomes[j].Path })

	counts := make(map[validate.Verdict]int)
	for _, out := range outcomes {
		counts[out.Verdict]++
	}

	return &Report{
		Section:    a.section,
		Outcomes:   outcomes,
		Counts:     counts,
		TotalBytes: a.bytes,
		Elapsed:    time.Since(a.started),
	}
}

// Report is the final aggregate for one section. Immutable once returned.
type Report struct {
	Section    string
	Outcomes   []validate.Outcome // Sorted by path; each path appears once.
	Counts     map[validate.Verdict]int
	TotalBytes int64
	Elapsed    time.Duration
}

// Flagged returns every non-Valid outcome, in path order.
func (r *Report) Flagged() []validate.Outcome {
	var flagged []validate.Outcome
	for _, out := range r.Outcomes {
		if out.Verdict != validate.Valid {
			flagged = append(flagged, out)
		}
	}
	return flagged
}

// FlaggedCount is the number of non-Valid outcomes.
func (r *Report) FlaggedCount() int {
	return len(r.Outcomes) - r.Counts[validate.Valid]
}
