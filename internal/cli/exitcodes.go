package cli

import (
	"errors"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// Exit codes for goeclint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitViolations indicates the run completed but found error violations.
	// It doubles as the generic failure code.
	ExitViolations = 1

	// ExitWarnings indicates the run found warnings under --strict.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 65

	// ExitIOError indicates files that could not be read or written.
	ExitIOError = 74
)

var (
	// ErrViolationsFound signals a non-zero exit decided by violations.
	// It is not logged.
	ErrViolationsFound = errors.New("violations found")

	// ErrFilesFailed signals that some files could not be processed. The
	// reporter has already shown the per-file errors.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// violationsError carries the exit code chosen for a run.
type violationsError struct {
	code int
}

func (e *violationsError) Error() string { return ErrViolationsFound.Error() }

func (e *violationsError) Is(target error) bool { return target == ErrViolationsFound }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitViolations
	}

	if strict && result.HasWarnings() {
		return ExitWarnings
	}

	return ExitSuccess
}

// resultError turns a finished run into the error the command returns.
func resultError(result *runner.Result, strict bool) error {
	if code := ExitCodeFromResult(result, strict); code != ExitSuccess {
		return &violationsError{code: code}
	}
	if result != nil && result.Stats.FilesErrored > 0 {
		return ErrFilesFailed
	}
	return nil
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var verr *violationsError
	if errors.As(err, &verr) {
		return verr.code
	}

	switch {
	case errors.Is(err, config.ErrInvalidConfiguration):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, lint.ErrFileNotFound),
		errors.Is(err, lint.ErrPermissionDenied),
		errors.Is(err, lint.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitViolations
	}
}

// IsSilent reports whether err only signals an exit code and should not be logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrViolationsFound) || errors.Is(err, ErrFilesFailed)
}
