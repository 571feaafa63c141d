// Command scanmaster is the CLI entrypoint for the Scanmaster corrupt
// media scanner.
//
// It parses flags and the optional YAML config, validates configuration,
// and either runs system diagnostics (--check) or the scan pipeline
// (discover → validate under a bounded pool → aggregate → CSV reports).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/scanmaster/internal/check"
	"github.com/backmassage/scanmaster/internal/config"
	"github.com/backmassage/scanmaster/internal/display"
	"github.com/backmassage/scanmaster/internal/logging"
	"github.com/backmassage/scanmaster/internal/scan"
	"github.com/backmassage/scanmaster/internal/validate"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scanmaster: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "scanmaster: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanmaster: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	log.Info("=== Scanmaster v%s (%s) ===", version, commit)
	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	}
	log.Info("Results: %s", cfg.ResultsDir)
	log.Info("")

	// Fail fast if the tools the chosen strategy needs are unavailable:
	// a missing validator binary would fail every file identically.
	if err := check.CheckDeps(cfg.Validation); err != nil {
		log.Error("%v", err)
		return 1
	}

	strategy, err := validate.New(cfg.Validation, validate.Options{
		Decoder: cfg.Decoder,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel the context on SIGINT/SIGTERM so
	// in-flight decoder processes are killed instead of orphaned.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, terminating in-flight checks…")
		cancel()
	}()

	// Phase 4: Run the scan.
	reports, err := scan.New(&cfg, log, strategy).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Scan cancelled; partial results above")
		} else {
			log.Error("%v", err)
		}
		return 1
	}

	if scan.TotalFlagged(reports) > 0 {
		return 2
	}
	return 0
}
