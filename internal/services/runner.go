package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/pgsqlclient/internal/db"
	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/internal/splitter"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

// ScriptRunner implements the Runner interface.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type ScriptRunner struct {
	connectorFactory pgsqlclient.ConnectorFactory
	fileSystem       filesystem.FileSystemProvider
	reporter         pgsqlclient.Reporter
	logger           pgsqlclient.Logger
}

// NewScriptRunner creates a new ScriptRunner with all dependencies injected.
// It panics on nil dependencies; those are wiring mistakes, not runtime conditions.
func NewScriptRunner(
	connectorFactory pgsqlclient.ConnectorFactory,
	fileSystem filesystem.FileSystemProvider,
	reporter pgsqlclient.Reporter,
	logger pgsqlclient.Logger,
) *ScriptRunner {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fileSystem == nil {
		panic("fileSystem cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ScriptRunner{
		connectorFactory: connectorFactory,
		fileSystem:       fileSystem,
		reporter:         reporter,
		logger:           logger,
	}
}

// Run executes config.Files in order over a single connection.
//
// A connection failure is returned before any file is attempted. A file
// that cannot be read, or whose statements fail on the server, is reported
// and the run moves on. Any other execution error aborts the run and is
// returned wrapped; the file it happened in is reported as failed first.
func (r *ScriptRunner) Run(ctx context.Context, config pgsqlclient.RunConfig) (pgsqlclient.RunSummary, error) {
	var summary pgsqlclient.RunSummary

	if err := config.Validate(); err != nil {
		return summary, err
	}

	conn, err := r.connect(ctx, &config.Connection)
	if err != nil {
		return summary, err
	}
	defer func() {
		if closeErr := conn.Close(context.WithoutCancel(ctx)); closeErr != nil {
			r.logger.Verbose("Failed to close connection: %v", closeErr)
		}
	}()

	total := len(config.Files)
	r.logger.Verbose("Executing %d file(s) in %s mode", total, config.Mode)
	r.reporter.Begin(total)

	for i, path := range config.Files {
		index := i + 1
		r.reporter.FileStarted(index, total, path)

		result, fatalErr := r.executeFile(ctx, conn, config.Mode, path)
		result.Index = index
		result.Total = total

		r.reporter.FileFinished(result)
		summary.Files = append(summary.Files, result)

		if fatalErr != nil {
			return summary, fmt.Errorf("execution of %s aborted: %w", path, fatalErr)
		}
	}

	if failed := summary.Failed(); failed > 0 {
		return summary, fmt.Errorf("%d of %d script(s) failed: %w", failed, total, pgsqlclient.ErrExecutionFailed)
	}
	return summary, nil
}

func (r *ScriptRunner) connect(ctx context.Context, connConfig *pgsqlclient.ConnectionConfig) (pgsqlclient.DBConnection, error) {
	connector, err := r.connectorFactory(connConfig, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// executeFile runs one file under mode. The returned error is non-nil only
// for failures that must end the run; everything else lands in the result.
func (r *ScriptRunner) executeFile(
	ctx context.Context,
	conn pgsqlclient.DBConnection,
	mode pgsqlclient.ExecutionMode,
	path string,
) (pgsqlclient.FileResult, error) {
	result := pgsqlclient.FileResult{Path: path, Mode: mode}

	text, err := splitter.ReadScript(r.fileSystem, path)
	if err != nil {
		r.logger.Verbose("Cannot read %s: %v", path, err)
		result.Err = err
		return result, nil
	}

	if mode.Multiline {
		return r.executeMultiline(ctx, conn, text, result)
	}
	return r.executeBundle(ctx, conn, text, result)
}

// executeMultiline sends the whole file as one command.
func (r *ScriptRunner) executeMultiline(
	ctx context.Context,
	conn pgsqlclient.DBConnection,
	text string,
	result pgsqlclient.FileResult,
) (pgsqlclient.FileResult, error) {
	r.logger.Verbose("%s: sending %d byte(s) as one command", result.Path, len(text))

	if _, err := conn.Exec(ctx, text); err != nil {
		result.Err = err
		if !db.IsStatementError(err) {
			return result, err
		}
	}
	return result, nil
}

// executeBundle sends each statement separately and keeps going after
// server-reported errors.
func (r *ScriptRunner) executeBundle(
	ctx context.Context,
	conn pgsqlclient.DBConnection,
	text string,
	result pgsqlclient.FileResult,
) (pgsqlclient.FileResult, error) {
	statements := splitter.Split(text)
	r.logger.Verbose("%s: %d statement(s)", result.Path, len(statements))

	if trailing := strings.TrimSpace(splitter.Trailing(text)); trailing != "" {
		r.logger.Verbose("%s: ignoring unterminated text after the last %q: %s",
			result.Path, pgsqlclient.StatementTerminator, trailing)
	}

	result.Statements = make([]pgsqlclient.StatementResult, 0, len(statements))
	for i, sql := range statements {
		stmt := pgsqlclient.StatementResult{Index: i + 1, SQL: sql}

		_, err := conn.Exec(ctx, sql)
		stmt.Err = err
		result.Statements = append(result.Statements, stmt)

		if err == nil {
			continue
		}
		if !db.IsStatementError(err) {
			return result, err
		}
		r.logger.Verbose("%s: statement %d failed: %v", result.Path, stmt.Index, err)
	}
	return result, nil
}

var _ pgsqlclient.Runner = (*ScriptRunner)(nil)
