package cli

import (
	"github.com/matzehuels/umldraw/pkg/errors"
)

// Exit statuses follow the BSD sysexits convention.
const (
	exitFailure  = 1
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return exitUsage
	case errors.ErrCodeInvalidSource, errors.ErrCodeInvalidInput:
		return exitDataErr
	case errors.ErrCodeFileNotFound:
		return exitNoInput
	case errors.ErrCodeInternal:
		return exitSoftware
	}
	return exitFailure
}

// ErrorMessage renders a command error for the terminal. Verbose output is
// the full chain with codes; otherwise only the messages are shown.
func ErrorMessage(err error, verbose bool) string {
	if verbose {
		return err.Error()
	}
	msg := errors.UserMessage(err)
	if errors.Is(err, errors.ErrCodeInvalidConfig) {
		msg += " (see " + configFileName + " keys under [layout] and [document])"
	}
	return msg
}
