// Package config holds runtime configuration: defaults, the YAML config
// file layer, CLI flag parsing, and validation. Defaults match the legacy
// Python scanners for parity.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// --- Enum types for validated string fields ---

// ValidationMode selects the validation strategy applied to every file.
type ValidationMode string

const (
	ValidateMetadata ValidationMode = "metadata" // ffprobe header/stream check (default, cheapest).
	ValidatePlayback ValidationMode = "playback" // 5s decode from the start of the file.
	ValidateInDepth  ValidationMode = "indepth"  // decode at start, midpoint, and end.
)

// DecoderMode selects hardware or software decoding for playback checks.
type DecoderMode string

const (
	DecoderSoftware DecoderMode = "software" // Plain ffmpeg decode (default).
	DecoderHardware DecoderMode = "hardware" // Adds -hwaccel auto.
)

// MediaKind selects the default extension allow-list.
type MediaKind string

const (
	MediaVideo MediaKind = "video" // Default.
	MediaAudio MediaKind = "audio"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default extension allow-lists, matching the legacy scanners.
var (
	VideoExtensions = []string{".mkv", ".avi", ".mp4", ".mov", ".wmv", ".mpg", ".mpeg", ".3gp", ".m4v"}
	AudioExtensions = []string{".mp3", ".wav", ".ogg", ".flac", ".m4a"}
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile] when a config file is present, and finally mutated
// by [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Config file path (empty = no file layer).
	ConfigFile string

	// Scan scope. Sections maps a section name (e.g. "TV", "Movies") to its
	// root directories. OutputFiles maps a section name to its CSV filename
	// inside ResultsDir; sections without an entry get "<section>.csv".
	Sections    map[string][]string
	OutputFiles map[string]string
	Extensions  []string
	Media       MediaKind

	// Validation settings.
	Validation ValidationMode
	Decoder    DecoderMode
	Timeout    time.Duration // Per external invocation. Default: 30s.

	// Concurrency.
	Workers int // Default: runtime.NumCPU().

	// Output.
	ResultsDir string // Default: "Results".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// scanners. Used as the base before the file layer and CLI overrides.
func DefaultConfig() Config {
	return Config{
		Media:      MediaVideo,
		Validation: ValidateMetadata,
		Decoder:    DecoderSoftware,
		Timeout:    30 * time.Second,
		Workers:    runtime.NumCPU(),
		ResultsDir: "Results",
		ColorMode:  ColorAuto,
	}
}

// EffectiveExtensions returns the configured extension allow-list, falling
// back to the default set for the selected media kind.
func (c *Config) EffectiveExtensions() []string {
	if len(c.Extensions) > 0 {
		return c.Extensions
	}
	if c.Media == MediaAudio {
		return AudioExtensions
	}
	return VideoExtensions
}

// OutputFileFor returns the CSV filename for a section, defaulting to
// "<section>.csv" when the config file does not name one.
func (c *Config) OutputFileFor(section string) string {
	if name, ok := c.OutputFiles[section]; ok && name != "" {
		return name
	}
	return section + ".csv"
}

// Validate checks enum fields and scan scope. In CheckOnly mode the scope
// requirements are skipped so --check works without a config file.
func (c *Config) Validate() error {
	switch c.Validation {
	case ValidateMetadata, ValidatePlayback, ValidateInDepth:
		// valid
	default:
		return errors.New("invalid validation mode (use 'metadata', 'playback', or 'indepth')")
	}

	switch c.Decoder {
	case DecoderSoftware, DecoderHardware:
		// valid
	default:
		return errors.New("invalid decoder mode (use 'hardware' or 'software')")
	}

	switch c.Media {
	case MediaVideo, MediaAudio:
		// valid
	default:
		return errors.New("invalid media kind (use 'video' or 'audio')")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Sections) == 0 {
		return errors.New("no scan sections configured (config file or --dir required)")
	}
	for name, roots := range c.Sections {
		if len(roots) == 0 {
			return fmt.Errorf("section %q has no directories", name)
		}
	}
	return nil
}
