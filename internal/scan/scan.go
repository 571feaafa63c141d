// Package scan orchestrates one full scan invocation: per-section discovery,
// worker-pool validation, aggregation, CSV reports, and the final summary.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/config"
	"github.com/backmassage/scanmaster/internal/display"
	"github.com/backmassage/scanmaster/internal/logging"
	"github.com/backmassage/scanmaster/internal/pool"
	"github.com/backmassage/scanmaster/internal/report"
	"github.com/backmassage/scanmaster/internal/validate"
)

// Coordinator runs one scan invocation. Configuration is scoped to the
// invocation; nothing here is package-level state.
type Coordinator struct {
	cfg      *config.Config
	log      *logging.Logger
	strategy validate.Strategy
}

// New creates a Coordinator for one scan.
func New(cfg *config.Config, log *logging.Logger, strategy validate.Strategy) *Coordinator {
	return &Coordinator{cfg: cfg, log: log, strategy: strategy}
}

// Run scans every configured section sequentially and returns the
// per-section reports. On cancellation it returns the reports collected so
// far together with the context error; a section whose CSV cannot be
// written is logged and surfaced as an error after the remaining sections
// have run.
func (c *Coordinator) Run(ctx context.Context) (map[string]*report.Report, error) {
	runID := uuid.NewString()
	start := time.Now()
	extensions := c.cfg.EffectiveExtensions()

	c.log.Info("Starting corruption scan (run %s)", runID)
	c.log.Info("Validation: %s, decoder: %s, timeout: %s", c.strategy.Name(), c.cfg.Decoder, c.cfg.Timeout)
	c.log.Info("Using %d workers for scanning", c.cfg.Workers)
	c.log.Info("")

	sections := make([]string, 0, len(c.cfg.Sections))
	for name := range c.cfg.Sections {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	reports := make(map[string]*report.Report, len(sections))
	var firstErr error

	for _, section := range sections {
		if ctx.Err() != nil {
			c.log.Warn("Interrupted, skipping remaining sections")
			break
		}

		rep, err := c.runSection(ctx, section, extensions)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if rep != nil {
			reports[section] = rep
		}
	}

	c.logSummary(sections, reports, time.Since(start))

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, firstErr
}

// runSection scans one named group of root directories: discover, validate
// under the pool bound, aggregate, and write the section CSV.
func (c *Coordinator) runSection(ctx context.Context, section string, extensions []string) (*report.Report, error) {
	c.log.Section("--- Scanning Section: %s ---", section)

	files := catalog.Discover(c.cfg.Sections[section], extensions, c.log.Warn)
	c.log.Info("Found %s files to scan", display.FormatCount(len(files)))

	var totalBytes int64
	for _, f := range files {
		totalBytes += f.Size
	}

	agg := report.New(section, totalBytes)
	prog := newProgress(len(files))

	stop := make(chan struct{})
	go prog.loop(ctx, stop, c.log.Info)

	pool.RunAll(ctx, files, c.strategy, c.cfg.Workers, func(out validate.Outcome) {
		agg.Record(out)
		prog.increment()
	})
	close(stop)

	rep := agg.Finalize()

	flagged := rep.FlaggedCount()
	if flagged > 0 {
		c.log.Warn("Corrupted files in %s: %d (corrupt %d, timeout %d, error %d)",
			section, flagged,
			rep.Counts[validate.Corrupt], rep.Counts[validate.Timeout], rep.Counts[validate.Error])
	} else {
		c.log.Success("No corrupted files in %s", section)
	}

	csvPath := filepath.Join(c.cfg.ResultsDir, c.cfg.OutputFileFor(section))
	if err := report.WriteFile(csvPath, rep); err != nil {
		c.log.Error("Cannot write report for %s: %v", section, err)
		return rep, fmt.Errorf("section %s: %w", section, err)
	}
	if flagged > 0 {
		c.log.Info("Saved to: %s", csvPath)
	}
	c.log.Info("")
	return rep, nil
}

// logSummary prints the cross-section summary in the legacy format.
func (c *Coordinator) logSummary(sections []string, reports map[string]*report.Report, elapsed time.Duration) {
	c.log.Info("Summary:")

	var totalFlagged int
	var totalFiles int
	var totalBytes int64
	for _, section := range sections {
		rep, ok := reports[section]
		if !ok {
			c.log.Warn("  %s: not scanned", section)
			continue
		}
		c.log.Info("  %s: %d corrupted files", section, rep.FlaggedCount())
		totalFlagged += rep.FlaggedCount()
		totalFiles += len(rep.Outcomes)
		totalBytes += rep.TotalBytes
	}

	c.log.Info("Scanned %s files (%s)", display.FormatCount(totalFiles), display.FormatBytes(totalBytes))
	if totalFlagged > 0 {
		c.log.Warn("Total corrupted files: %d", totalFlagged)
	} else {
		c.log.Success("Total corrupted files: 0")
	}
	c.log.Info("Time elapsed: %s", display.FormatElapsed(elapsed))
}

// TotalFlagged sums the flagged counts across reports; used for the exit
// status.
func TotalFlagged(reports map[string]*report.Report) int {
	var n int
	for _, rep := range reports {
		n += rep.FlaggedCount()
	}
	return n
}
