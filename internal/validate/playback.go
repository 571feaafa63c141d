package validate

import (
	"context"

	"github.com/backmassage/scanmaster/internal/catalog"
	"github.com/backmassage/scanmaster/internal/config"
)

// playbackWindow is how many seconds each playback probe decodes.
const playbackWindow = "5"

// SinglePointPlayback decodes a short window from the start of the file to
// the null muxer, catching corruption in the initial bytes that a pure
// metadata inspection misses.
type SinglePointPlayback struct {
	opts Options
}

func (s *SinglePointPlayback) Name() string { return "playback" }

func (s *SinglePointPlayback) Validate(ctx context.Context, file catalog.CandidateFile) Outcome {
	if out, done := precheck(file); done {
		return out
	}

	args := playbackArgs(s.opts.Decoder, file.Path, "-ss", "0")
	res, err := s.opts.Invoker.Run(ctx, s.opts.Timeout, "ffmpeg", args...)
	if out, done := classify(file, StagePlaybackStart, res, err); done {
		return out
	}
	return valid(file.Path)
}

// playbackArgs assembles a decode-and-discard invocation. seek is the seek
// clause ("-ss", "0" / "-ss", "123.4" / "-sseof", "-5") and precedes -i so
// ffmpeg seeks on the demuxer. Hardware mode adds -hwaccel auto; control
// flow is otherwise identical.
func playbackArgs(decoder config.DecoderMode, path string, seek ...string) []string {
	args := []string{"-v", "error"}
	if decoder == config.DecoderHardware {
		args = append(args, "-hwaccel", "auto")
	}
	args = append(args, seek...)
	args = append(args, "-i", path, "-t", playbackWindow, "-f", "null", "-")
	return args
}
