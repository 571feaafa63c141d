package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Key names match the legacy
// Config.yaml so existing files keep working.
type fileConfig struct {
	Directories map[string][]string `yaml:"DIRECTORIES"`
	OutputFiles map[string]string   `yaml:"OUTPUT_FILES"`
	Extensions  []string            `yaml:"EXTENSIONS"`
	Workers     int                 `yaml:"WORKERS"`
	TimeoutSecs int                 `yaml:"TIMEOUT_SECONDS"`
	ResultsDir  string              `yaml:"RESULTS_DIR"`
}

// LoadFile overlays settings from the YAML file at path onto cfg. A missing
// file is an error here: the caller decides whether the file layer is
// optional (it is when sections come from --dir instead).
func LoadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if len(fc.Directories) > 0 {
		cfg.Sections = fc.Directories
	}
	if len(fc.OutputFiles) > 0 {
		cfg.OutputFiles = fc.OutputFiles
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = normalizeExtensions(fc.Extensions)
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if fc.TimeoutSecs > 0 {
		cfg.Timeout = secondsToDuration(fc.TimeoutSecs)
	}
	if fc.ResultsDir != "" {
		cfg.ResultsDir = fc.ResultsDir
	}
	cfg.ConfigFile = path
	return nil
}

// normalizeExtensions lowercases entries and ensures each starts with a dot,
// so ".MKV" and "mkv" both match files with suffix ".mkv".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = lowerTrim(e)
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func secondsToDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
