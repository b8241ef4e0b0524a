package pgsqlclient

// Logger provides a pluggable logging interface for diagnostic output.
// Diagnostics never go to the script report; implementations write elsewhere
// (stderr by default). Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
