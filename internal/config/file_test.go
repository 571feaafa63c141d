package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_FullConfig(t *testing.T) {
	path := writeConfig(t, `
DIRECTORIES:
  TV:
    - /media/tv
    - /media/anime
  Movies:
    - /media/movies
OUTPUT_FILES:
  TV: Corrupt_TV.csv
  Movies: Corrupt_Movies.csv
EXTENSIONS:
  - .mkv
  - MP4
WORKERS: 8
TIMEOUT_SECONDS: 60
RESULTS_DIR: /data/results
`)

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(cfg.Sections) != 2 {
		t.Errorf("got %d sections, want 2", len(cfg.Sections))
	}
	if len(cfg.Sections["TV"]) != 2 {
		t.Errorf("TV roots = %v, want 2 entries", cfg.Sections["TV"])
	}
	if cfg.OutputFileFor("TV") != "Corrupt_TV.csv" {
		t.Errorf("TV output file = %q", cfg.OutputFileFor("TV"))
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %s, want 60s", cfg.Timeout)
	}
	if cfg.ResultsDir != "/data/results" {
		t.Errorf("ResultsDir = %q", cfg.ResultsDir)
	}

	// Extensions are normalized: lowercase, leading dot.
	want := []string{".mkv", ".mp4"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("Extensions = %v, want %v", cfg.Extensions, want)
	}
	for i := range want {
		if cfg.Extensions[i] != want[i] {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], want[i])
		}
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
DIRECTORIES:
  Library:
    - /media
`)

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want default 30s", cfg.Timeout)
	}
	if cfg.ResultsDir != "Results" {
		t.Errorf("ResultsDir = %q, want default", cfg.ResultsDir)
	}
}

func TestLoadFile_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, `
DIRECTORIES:
  Library:
    - /media
TYPO_KEY: true
`)

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile should reject unknown keys")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile should fail for a missing file")
	}
}

func TestNormalizeExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"already normal", []string{".mkv"}, []string{".mkv"}},
		{"missing dot", []string{"mp4"}, []string{".mp4"}},
		{"uppercase", []string{".MKV", "AVI"}, []string{".mkv", ".avi"}},
		{"blank entries dropped", []string{"", " ", ".mp3"}, []string{".mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeExtensions(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
