package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifetracks/internal/logger"
)

// ValidationError is a rejected user action. State is left unchanged and the
// message is shown to the user as-is.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidation creates a validation sentinel. Engines declare their
// user-facing failures with it so front ends can tell them from faults.
func NewValidation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err (or anything it wraps) is a validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// Format formats an error message with a consistent "Error: " prefix.
// Validation failures are prefixed with "Nothing changed: " instead.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if IsValidation(err) {
		return fmt.Sprintf("Nothing changed: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// ExitCode is the process status for err: 0 on success, 2 when the command
// was rejected and nothing changed, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsValidation(err):
		return 2
	default:
		return 1
	}
}

// Fatal logs err, prints it and exits with ExitCode(err). A nil err returns.
func Fatal(err error) {
	if err == nil {
		return
	}
	if IsValidation(err) {
		logger.Info("Command rejected", "reason", err)
	} else {
		logger.Error("Command execution failed", "error", err)
	}
	fmt.Fprintln(os.Stderr, Format(err))
	_ = logger.Close()
	os.Exit(ExitCode(err))
}
