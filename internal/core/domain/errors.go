package domain

import "go.trai.ch/zerr"

var (
	// ErrCommandStart is returned when an external program could not be launched.
	ErrCommandStart = zerr.New("failed to execute command")

	// ErrCommandFailed is returned when a command exits unsuccessfully and its policy is not Ignore.
	ErrCommandFailed = zerr.New("command failed")

	// ErrNoCommand is returned when a command has no program.
	ErrNoCommand = zerr.New("no command specified")

	// ErrOutputNotText is returned when captured output was requested as text but is not valid UTF-8.
	ErrOutputNotText = zerr.New("command output is not valid text")

	// ErrFileRead is returned when a file cannot be read.
	ErrFileRead = zerr.New("failed to read file")

	// ErrFileNotText is returned when a file's contents are not valid UTF-8.
	ErrFileNotText = zerr.New("file is not valid text")

	// ErrNoPathPatterns is returned when a freshness query names no paths.
	ErrNoPathPatterns = zerr.New("no path patterns given")

	// ErrAbsolutePathPattern is returned when a freshness pattern is not relative to the source root.
	ErrAbsolutePathPattern = zerr.New("path pattern must be relative")

	// ErrGitQueryFailed is returned when a git query needed for a freshness verdict fails.
	ErrGitQueryFailed = zerr.New("git query failed")

	// ErrInvalidFailurePolicy is returned when a failure policy name is unknown.
	ErrInvalidFailurePolicy = zerr.New("invalid failure policy, expected 'exit', 'delay' or 'ignore'")

	// ErrInvalidOutputMode is returned when an output mode name is unknown.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'capture', 'print' or 'discard'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPlanReadFailed is returned when a plan file cannot be read.
	ErrPlanReadFailed = zerr.New("failed to read plan file")

	// ErrPlanParseFailed is returned when a plan file cannot be parsed.
	ErrPlanParseFailed = zerr.New("failed to parse plan file")

	// ErrInvalidStep is returned when a plan step does not name exactly one action.
	ErrInvalidStep = zerr.New("invalid plan step")

	// ErrStepsFailed is returned when plan steps failed without being delayed.
	ErrStepsFailed = zerr.New("plan steps failed")

	// ErrDelayedFailures is returned at the end of a run when delayed failures occurred.
	ErrDelayedFailures = zerr.New("build finished with delayed failures")
)
