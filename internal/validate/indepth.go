package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/runner"
)

// MultiPointPlayback probes playback at the start, midpoint, and end of the
// file, short-circuiting on the first failing stage. Highest confidence,
// highest cost (up to four process spawns per file); it exists because
// corruption clusters near the end of truncated downloads, which start-only
// checks miss entirely.
type MultiPointPlayback struct {
	opts Options
}

func (m *MultiPointPlayback) Name() string { return "indepth" }

func (m *MultiPointPlayback) Validate(ctx context.Context, file catalog.CandidateFile) Outcome {
	if out, done := precheck(file); done {
		return out
	}

	// Stage order is fixed: start → duration → middle → end. Later probes
	// never run once one fails.
	args := playbackArgs(m.opts.Decoder, file.Path, "-ss", "0")
	res, err := m.opts.Invoker.Run(ctx, m.opts.Timeout, "ffmpeg", args...)
	if out, done := classify(file, StagePlaybackStart, res, err); done {
		return out
	}

	duration, out, ok := m.probeDuration(ctx, file)
	if !ok {
		return out
	}

	midpoint := strconv.FormatFloat(duration/2, 'f', 3, 64)
	args = playbackArgs(m.opts.Decoder, file.Path, "-ss", midpoint)
	res, err = m.opts.Invoker.Run(ctx, m.opts.Timeout, "ffmpeg", args...)
	if out, done := classify(file, StagePlaybackMiddle, res, err); done {
		return out
	}

	args = playbackArgs(m.opts.Decoder, file.Path, "-sseof", "-"+playbackWindow)
	res, err = m.opts.Invoker.Run(ctx, m.opts.Timeout, "ffmpeg", args...)
	if out, done := classify(file, StagePlaybackEnd, res, err); done {
		return out
	}
	return valid(file.Path)
}

// probeDuration queries the container duration via ffprobe. Any failure to
// obtain a usable duration is verdict=Error (not Corrupt): the start probe
// already succeeded, so an unreadable duration is ambiguous.
func (m *MultiPointPlayback) probeDuration(ctx context.Context, file catalog.CandidateFile) (float64, Outcome, bool) {
	res, err := m.opts.Invoker.Run(ctx, m.opts.Timeout, "ffprobe", durationArgs(file.Path)...)
	switch {
	case errors.Is(err, runner.ErrTimeout):
		return 0, timedOut(file.Path, StageDuration), false
	case errors.Is(err, context.Canceled):
		return 0, failed(file.Path, StageDuration, "scan cancelled"), false
	case err != nil:
		return 0, failed(file.Path, StageDuration, err.Error()), false
	case res.ExitCode != 0:
		return 0, failed(file.Path, StageDuration,
			"failed to fetch file duration: "+runner.Tail(res.Stderr, stderrTailLines)), false
	}

	raw := strings.TrimSpace(res.Stdout)
	if raw == "" {
		return 0, failed(file.Path, StageDuration, "failed to fetch file duration"), false
	}
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil || duration < 0 {
		return 0, failed(file.Path, StageDuration, fmt.Sprintf("unparseable duration %q", raw)), false
	}
	return duration, Outcome{}, true
}

func durationArgs(path string) []string {
	return []string{"-v", "error", "-show_entries", "format=duration", "-of", "csv=p=0", path}
}
