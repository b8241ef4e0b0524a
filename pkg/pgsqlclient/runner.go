package pgsqlclient

import "context"

// Runner executes a list of script files against one database connection.
type Runner interface {
	// Run connects, executes every file of config in order and reports each
	// outcome. It returns an error wrapping ErrExecutionFailed when at least one
	// file failed, ErrConnectionFailed when no connection could be opened, and
	// the underlying error when an unclassified failure aborted the run.
	Run(ctx context.Context, config RunConfig) (RunSummary, error)
}

// Reporter receives run progress. Implementations render it for a user.
type Reporter interface {
	// Begin is called once, after the connection opened, before any file runs.
	Begin(total int)

	// FileStarted is called before a file is executed.
	FileStarted(index, total int, path string)

	// FileFinished is called with the outcome of the file just started.
	FileFinished(result FileResult)
}
