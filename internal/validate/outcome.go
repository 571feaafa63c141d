// Package validate implements the per-file validation strategies: a cheap
// ffprobe metadata check, a single-point playback decode, and an in-depth
// start/middle/end decode. Each maps external process outcomes to a verdict.
package validate

// Verdict classifies the result of validating one file.
type Verdict int

const (
	Valid   Verdict = iota // No defect detected.
	Corrupt                // Validator positively detected a defect.
	Timeout                // External process exceeded its bound; check manually.
	Error                  // Orchestration failure (spawn, duration read, cancellation).
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Corrupt:
		return "corrupt"
	case Timeout:
		return "timeout"
	case Error:
		return "error"
	}
	return "unknown"
}

// Stages identify which check produced a non-Valid verdict.
const (
	StageExistence      = "existence"
	StageMetadata       = "metadata"
	StageDuration       = "duration"
	StagePlaybackStart  = "playback-start"
	StagePlaybackMiddle = "playback-middle"
	StagePlaybackEnd    = "playback-end"
)

// Outcome is the result of validating one file. Append-only: created by a
// strategy, owned by the aggregator thereafter, never mutated.
type Outcome struct {
	Path    string
	Verdict Verdict
	Stage   string // Empty for Valid.
	Detail  string // Empty for Valid.
}

func valid(path string) Outcome {
	return Outcome{Path: path, Verdict: Valid}
}

func corrupt(path, stage, detail string) Outcome {
	return Outcome{Path: path, Verdict: Corrupt, Stage: stage, Detail: detail}
}

func timedOut(path, stage string) Outcome {
	return Outcome{Path: path, Verdict: Timeout, Stage: stage, Detail: "Process timed out, please check manually"}
}

func failed(path, stage, detail string) Outcome {
	return Outcome{Path: path, Verdict: Error, Stage: stage, Detail: detail}
}
