package pgsqlclient

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All scripts executed successfully, or help/version printed
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing flag value, unknown file or option)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitExecutionFailed = 13 // At least one script reported errors
)

// Connection defaults used when the corresponding flag is not given.
const (
	DefaultHost     = "localhost"
	DefaultDatabase = "postgres"
	DefaultPort     = 5432
	DefaultUser     = "postgres"

	// DefaultAppName is reported to the server as application_name.
	DefaultAppName = "pgsqlclient"
)

// StatementTerminator ends a statement in bundle mode.
const StatementTerminator = ";"
