package validate

import (
	"context"

	"github.com/backmassage/scanmaster/internal/catalog"
)

// MetadataCheck validates container and stream metadata with one ffprobe
// call. Cheapest check, lowest confidence: it detects malformed headers and
// streams but not mid-stream bitstream corruption.
type MetadataCheck struct {
	opts Options
}

func (m *MetadataCheck) Name() string { return "metadata" }

func (m *MetadataCheck) Validate(ctx context.Context, file catalog.CandidateFile) Outcome {
	if out, done := precheck(file); done {
		return out
	}

	res, err := m.opts.Invoker.Run(ctx, m.opts.Timeout, "ffprobe", metadataArgs(file.Path)...)
	if out, done := classify(file, StageMetadata, res, err); done {
		return out
	}
	return valid(file.Path)
}

func metadataArgs(path string) []string {
	return []string{"-v", "error", "-show_format", "-show_streams", "-i", path}
}
