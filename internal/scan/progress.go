package scan

import (
	"context"
	"sync/atomic"
	"time"
)

// progressInterval is how often the live progress line is logged while a
// section is scanning.
const progressInterval = 10 * time.Second

// progress holds the live completion counter for one section. The counter
// is atomic so pool workers can bump it without locks while the reporter
// goroutine reads it.
type progress struct {
	done  atomic.Int64
	total int
}

func newProgress(total int) *progress {
	return &progress{total: total}
}

func (p *progress) increment() { p.done.Add(1) }

// loop logs done/total at a fixed interval until stop is closed or ctx is
// cancelled. A final line is emitted on stop so the last count is visible.
func (p *progress) loop(ctx context.Context, stop <-chan struct{}, logf func(format string, args ...interface{})) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			logf("  progress: %d/%d files", p.done.Load(), p.total)
		case <-stop:
			logf("  progress: %d/%d files", p.done.Load(), p.total)
			return
		case <-ctx.Done():
			return
		}
	}
}
