package pgsqlclient

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := runner.Run(ctx, config)
//	if errors.Is(err, pgsqlclient.ErrExecutionFailed) {
//	    // At least one script failed; details were already reported
//	}
var (
	// ErrUsage indicates the command line could not be interpreted.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileAccess indicates a script file could not be opened or read.
	ErrFileAccess = errors.New("file access failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrExecutionFailed indicates at least one script reported SQL errors.
	ErrExecutionFailed = errors.New("execution failed")
)

// UsageError is a numbered command-line error. The number is part of the
// user-facing message so scripts wrapping the tool can match on it.
type UsageError struct {
	Code    int
	Message string
}

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(code int, format string, args ...any) *UsageError {
	return &UsageError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}

// Unwrap makes errors.Is(err, ErrUsage) succeed for every UsageError.
func (e *UsageError) Unwrap() error {
	return ErrUsage
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
