package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into scan scope, validation, behavior, display, and
// utility. File-layer values are loaded before flags so that flags win.

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, unreadable config file).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("scanmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var (
		configPath  string
		dirs        repeatedValue
		extensions  string
		timeoutSecs int
		forceColor  bool
		noColor     bool
		showVersion bool
		showHelp    bool
	)

	fs.StringVar(&configPath, "config", "", "YAML config file with sections and output files")
	fs.StringVar(&configPath, "C", "", "Same as --config")
	fs.Var(&dirs, "dir", "Directory to scan (repeatable; forms a 'Library' section)")
	fs.StringVar(&extensions, "extensions", "", "Comma-separated extension allow-list (overrides defaults)")
	fs.Var(&mediaKindValue{&cfg.Media}, "media", "Media kind: video | audio")
	fs.Var(&validationModeValue{&cfg.Validation}, "validation", "Validation mode: metadata | playback | indepth")
	fs.Var(&validationModeValue{&cfg.Validation}, "s", "Same as --validation")
	fs.Var(&decoderModeValue{&cfg.Decoder}, "decoder", "Decoder mode: software | hardware")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent validations (default: CPU count)")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
	fs.IntVar(&timeoutSecs, "timeout", 0, "Per-invocation timeout in seconds (default: 30)")
	fs.StringVar(&cfg.ResultsDir, "results", cfg.ResultsDir, "Directory for CSV reports")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "scanmaster v"+version)
		os.Exit(0)
	}

	// File layer first, then flag overrides on top.
	if configPath != "" {
		if err := LoadFile(cfg, configPath); err != nil {
			return err
		}
	}
	if len(dirs) > 0 {
		cfg.Sections = map[string][]string{"Library": dirs}
	}
	if extensions != "" {
		cfg.Extensions = normalizeExtensions(strings.Split(extensions, ","))
	}
	if timeoutSecs != 0 {
		if timeoutSecs < 0 {
			return fmt.Errorf("timeout must be positive (got %d)", timeoutSecs)
		}
		cfg.Timeout = time.Duration(timeoutSecs) * time.Second
	}
	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}
	return nil
}

// repeatedValue collects a repeatable string flag (--dir a --dir b).
type repeatedValue []string

func (r *repeatedValue) String() string { return strings.Join(*r, ",") }
func (r *repeatedValue) Set(s string) error {
	*r = append(*r, s)
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Scanmaster v" + version + " — corrupt media scanner"},
		{"", ""},
		{"  scanmaster [OPTIONS]", ""},
		{"", ""},
		{"Scan scope", ""},
		{"  -C, --config <path>", "YAML config file (sections, output files)"},
		{"  --dir <path>", "Directory to scan (repeatable, replaces config sections)"},
		{"  --media <video|audio>", "Default extension set (default: video)"},
		{"  --extensions <.a,.b>", "Explicit extension allow-list"},
		{"", ""},
		{"Validation", ""},
		{"  -s, --validation <mode>", "metadata | playback | indepth (default: metadata)"},
		{"  --decoder <software|hardware>", "Decoder for playback checks (default: software)"},
		{"  --timeout <seconds>", "Per-invocation timeout (default: 30)"},
		{"  -w, --workers <n>", "Concurrent validations (default: CPU count)"},
		{"", ""},
		{"Output", ""},
		{"  --results <dir>", "Directory for CSV reports (default: Results)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, hwaccels)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum types reject invalid values at parse time
// instead of silently falling back.

type validationModeValue struct{ p *ValidationMode }

func (v *validationModeValue) String() string { return string(*v.p) }
func (v *validationModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "metadata":
		*v.p = ValidateMetadata
	case "playback":
		*v.p = ValidatePlayback
	case "indepth":
		*v.p = ValidateInDepth
	default:
		return fmt.Errorf("invalid validation mode %q (use 'metadata', 'playback', or 'indepth')", s)
	}
	return nil
}

type decoderModeValue struct{ p *DecoderMode }

func (d *decoderModeValue) String() string { return string(*d.p) }
func (d *decoderModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "software":
		*d.p = DecoderSoftware
	case "hardware":
		*d.p = DecoderHardware
	default:
		return fmt.Errorf("invalid decoder mode %q (use 'software' or 'hardware')", s)
	}
	return nil
}

type mediaKindValue struct{ p *MediaKind }

func (m *mediaKindValue) String() string { return string(*m.p) }
func (m *mediaKindValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "video":
		*m.p = MediaVideo
	case "audio":
		*m.p = MediaAudio
	default:
		return fmt.Errorf("invalid media kind %q (use 'video' or 'audio')", s)
	}
	return nil
}
