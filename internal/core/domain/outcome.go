package domain

import (
	"strings"
	"unicode/utf8"
)

// OutputMode controls what happens to one output stream of a command.
type OutputMode uint8

const (
	// OutputCapture collects the stream for later inspection.
	OutputCapture OutputMode = iota
	// OutputPrint streams the bytes through to the console.
	OutputPrint
	// OutputDiscard drops the stream.
	OutputDiscard
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputCapture:
		return "capture"
	case OutputPrint:
		return "print"
	case OutputDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// ParseOutputMode parses a mode name. The empty string means OutputPrint.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "capture":
		return OutputCapture, nil
	case "", "print":
		return OutputPrint, nil
	case "discard", "null":
		return OutputDiscard, nil
	default:
		return OutputPrint, ErrInvalidOutputMode
	}
}

// StreamState says whether and how a stream was captured.
type StreamState uint8

const (
	// StreamNotCaptured means the stream was printed, discarded or never produced.
	StreamNotCaptured StreamState = iota
	// StreamText means the captured bytes are valid UTF-8.
	StreamText
	// StreamNotText means bytes were captured but are not valid UTF-8.
	StreamNotText
)

// Stream is the captured content of one output stream.
type Stream struct {
	State StreamState
	raw   string
}

// CapturedStream builds a Stream from captured bytes.
func CapturedStream(b []byte) Stream {
	if !utf8.Valid(b) {
		return Stream{State: StreamNotText, raw: string(b)}
	}
	return Stream{State: StreamText, raw: string(b)}
}

// Text returns the captured text if the stream holds valid text.
func (s Stream) Text() (string, bool) {
	if s.State != StreamText {
		return "", false
	}
	return s.raw, true
}

// Bytes returns whatever was captured, text or not.
func (s Stream) Bytes() []byte {
	if s.State == StreamNotCaptured {
		return nil
	}
	return []byte(s.raw)
}

// ExitStatus classifies how a command ended.
type ExitStatus uint8

const (
	// StatusSuccess is a zero exit, or a simulated run.
	StatusSuccess ExitStatus = iota
	// StatusFailed is a non-zero exit code.
	StatusFailed
	// StatusSignaled is an abnormal termination without exit code.
	StatusSignaled
	// StatusNotStarted means the process could not be launched.
	StatusNotStarted
)

// String returns a short status description.
func (s ExitStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSignaled:
		return "signaled"
	case StatusNotStarted:
		return "not started"
	default:
		return "unknown"
	}
}

// Outcome is the recorded result of running or simulating a Command.
// Outcomes are plain values; copying one yields an independent clone.
type Outcome struct {
	Started  bool
	Status   ExitStatus
	ExitCode int
	Stdout   Stream
	Stderr   Stream
}

// DryRunOutcome is the trivially successful result of a simulated command.
func DryRunOutcome() Outcome {
	return Outcome{Status: StatusSuccess}
}

// NotStartedOutcome is the result of a command that could not be launched.
func NotStartedOutcome() Outcome {
	return Outcome{Status: StatusNotStarted, ExitCode: -1}
}

// IsSuccess reports whether the command succeeded (or was simulated).
func (o Outcome) IsSuccess() bool {
	return o.Status == StatusSuccess
}

// IsFailure reports whether the command failed or did not start.
func (o Outcome) IsFailure() bool {
	return !o.IsSuccess()
}

// StdoutText returns the captured standard output if it is text.
func (o Outcome) StdoutText() (string, bool) {
	return o.Stdout.Text()
}

// StderrIfPresent returns captured standard error if it is text.
func (o Outcome) StderrIfPresent() (string, bool) {
	return o.Stderr.Text()
}
