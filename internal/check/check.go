// Package check provides system diagnostics (--check mode) and pre-scan
// dependency validation for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/scanmaster/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
// A missing validator binary is fatal to the whole scan: every subsequent
// file would fail identically, so it is surfaced before any file is touched.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability and
// versions of ffprobe and ffmpeg, and the hardware accelerations ffmpeg
// offers. Informational only; it does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, "ffprobe")
	checkTool(log, "ffmpeg")
	checkHwaccels(log)
}

// CheckDeps verifies that the tools the chosen validation mode will invoke
// are on PATH. Metadata needs only ffprobe; playback needs only ffmpeg;
// in-depth drives both.
func CheckDeps(mode config.ValidationMode) error {
	needFfprobe := mode == config.ValidateMetadata || mode == config.ValidateInDepth
	needFfmpeg := mode == config.ValidatePlayback || mode == config.ValidateInDepth

	if needFfprobe {
		if _, err := exec.LookPath("ffprobe"); err != nil {
			return ErrFfprobeNotFound
		}
	}
	if needFfmpeg {
		if _, err := exec.LookPath("ffmpeg"); err != nil {
			return ErrFfmpegNotFound
		}
	}
	return nil
}

// checkTool verifies a binary is on PATH and logs its version string.
func checkTool(log Logger, name string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return
	}
	cmd := exec.Command(name, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
}

// checkHwaccels lists the hardware accelerations ffmpeg reports, relevant
// when running playback checks with --decoder hardware.
func checkHwaccels(log Logger) {
	cmd := exec.Command("ffmpeg", "-hide_banner", "-hwaccels")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("Could not list hardware accelerations: %v", err)
		return
	}
	log.Info("Hardware accelerations:")
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Hardware acceleration methods") {
			continue
		}
		log.Info("  %s", line)
	}
}
