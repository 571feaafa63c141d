package config

import (
	"testing"
	"time"
)

func TestValidate_ValidationMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ValidationMode
		wantErr bool
	}{
		{"metadata is valid", ValidateMetadata, false},
		{"playback is valid", ValidatePlayback, false},
		{"indepth is valid", ValidateInDepth, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "deep", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip section requirement
			cfg.Validation = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DecoderMode(t *testing.T) {
	tests := []struct {
		name    string
		decoder DecoderMode
		wantErr bool
	}{
		{"software is valid", DecoderSoftware, false},
		{"hardware is valid", DecoderHardware, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "gpu", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.Decoder = tt.decoder
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresSections(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with no sections configured")
	}

	cfg.Sections = map[string][]string{"TV": {"/media/tv"}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	cfg.Sections["Movies"] = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for a section with no directories")
	}
}

func TestValidate_CheckOnlySkipsSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with no sections when CheckOnly is true, got: %v", err)
	}
}

func TestValidate_WorkersAndTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true

	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject zero workers")
	}
	cfg.Workers = 4

	cfg.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject zero timeout")
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Validation != ValidateMetadata {
		t.Errorf("default Validation = %q, want %q", cfg.Validation, ValidateMetadata)
	}
	if cfg.Decoder != DecoderSoftware {
		t.Errorf("default Decoder = %q, want %q", cfg.Decoder, DecoderSoftware)
	}
	if cfg.Media != MediaVideo {
		t.Errorf("default Media = %q, want %q", cfg.Media, MediaVideo)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("default Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.Workers < 1 {
		t.Errorf("default Workers = %d, want >= 1", cfg.Workers)
	}
	if cfg.ResultsDir != "Results" {
		t.Errorf("default ResultsDir = %q, want %q", cfg.ResultsDir, "Results")
	}
}

func TestEffectiveExtensions(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.EffectiveExtensions()
	if len(got) != len(VideoExtensions) {
		t.Errorf("video defaults: got %d extensions, want %d", len(got), len(VideoExtensions))
	}

	cfg.Media = MediaAudio
	got = cfg.EffectiveExtensions()
	if len(got) != len(AudioExtensions) {
		t.Errorf("audio defaults: got %d extensions, want %d", len(got), len(AudioExtensions))
	}

	cfg.Extensions = []string{".mkv"}
	got = cfg.EffectiveExtensions()
	if len(got) != 1 || got[0] != ".mkv" {
		t.Errorf("explicit list should win, got %v", got)
	}
}

func TestOutputFileFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputFiles = map[string]string{"TV": "Corrupt_TV.csv"}

	if got := cfg.OutputFileFor("TV"); got != "Corrupt_TV.csv" {
		t.Errorf("OutputFileFor(TV) = %q, want configured name", got)
	}
	if got := cfg.OutputFileFor("Movies"); got != "Movies.csv" {
		t.Errorf("OutputFileFor(Movies) = %q, want default name", got)
	}
}
