package pgsqlclient

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// AppName is reported to the server as application_name.
	AppName string
}

// DefaultConnectionConfig returns the parameters used when no flag overrides them.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Database: DefaultDatabase,
		Username: DefaultUser,
		AppName:  DefaultAppName,
	}
}

// Address returns host:port for messages. It never includes credentials.
func (c ConnectionConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ExecutionMode selects how files are sent and how outcomes are narrated.
type ExecutionMode struct {
	// Silent suppresses progress output; only failures are printed.
	Silent bool

	// Multiline sends each file's entire content as one command instead of
	// splitting it into statements.
	Multiline bool
}

// String returns the name of the execution strategy.
func (m ExecutionMode) String() string {
	if m.Multiline {
		return "multiline"
	}
	return "bundle"
}

// RunConfig contains everything needed for one invocation.
// It is built once by argument parsing and not modified afterwards.
type RunConfig struct {
	Connection ConnectionConfig
	Mode       ExecutionMode

	// Files are executed in this order. An empty list still opens and closes
	// the connection.
	Files []string

	// Verbose enables diagnostic logging.
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.Connection.Host == "" {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidConfig))
	}

	if c.Connection.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidConfig))
	}

	if c.Connection.Port < 1 || c.Connection.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range: %w", c.Connection.Port, ErrInvalidConfig))
	}

	for i, f := range c.Files {
		if f == "" {
			errs = append(errs, fmt.Errorf("file #%d has an empty path: %w", i+1, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// StatementResult is the outcome of one statement sent in bundle mode.
type StatementResult struct {
	// Index is the 1-based position of the statement in its file.
	Index int

	// SQL is the statement text exactly as sent, including its terminator.
	SQL string

	// Err is the server-reported error, nil on success.
	Err error
}

// Succeeded reports whether the statement executed without error.
func (r StatementResult) Succeeded() bool {
	return r.Err == nil
}

// FileResult is the outcome of executing one script file.
type FileResult struct {
	// Index is the 1-based position of the file in the run; Total is the file count.
	Index int
	Total int

	Path string
	Mode ExecutionMode

	// Statements holds one entry per statement executed in bundle mode.
	// It is empty in multiline mode.
	Statements []StatementResult

	// Err is a file-level failure: the file could not be read, or the single
	// multiline command failed.
	Err error
}

// Succeeded reports whether the file executed without any error.
func (r FileResult) Succeeded() bool {
	if r.Err != nil {
		return false
	}
	for _, s := range r.Statements {
		if !s.Succeeded() {
			return false
		}
	}
	return true
}

// FailedStatements returns the statements that reported an error, in order.
func (r FileResult) FailedStatements() []StatementResult {
	var failed []StatementResult
	for _, s := range r.Statements {
		if !s.Succeeded() {
			failed = append(failed, s)
		}
	}
	return failed
}

// ErrorText renders the accumulated error buffer of the file.
//
// A file-level error contributes "<message>\n". Every failed statement
// contributes "<message>\n<statement>\n", in execution order.
func (r FileResult) ErrorText() string {
	var b strings.Builder
	if r.Err != nil {
		b.WriteString(r.Err.Error())
		b.WriteString("\n")
	}
	for _, s := range r.FailedStatements() {
		b.WriteString(s.Err.Error())
		b.WriteString("\n")
		b.WriteString(s.SQL)
		b.WriteString("\n")
	}
	return b.String()
}

// RunSummary aggregates the file results of a run.
type RunSummary struct {
	Files []FileResult
}

// Failed returns the number of files that did not succeed.
func (s RunSummary) Failed() int {
	n := 0
	for _, f := range s.Files {
		if !f.Succeeded() {
			n++
		}
	}
	return n
}

// Succeeded reports whether every executed file succeeded.
func (s RunSummary) Succeeded() bool {
	return s.Failed() == 0
}
