package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

type mockConnector struct {
	conn *mockDBConnection
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (pgsqlclient.DBConnection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

// mockDBConnection records every command it receives. execFn decides the
// outcome of each command; a nil execFn makes every command succeed.
type mockDBConnection struct {
	execFn   func(sql string) error
	executed []string
	closed   int
}

func (m *mockDBConnection) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.executed = append(m.executed, sql)
	if m.execFn != nil {
		if err := m.execFn(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (m *mockDBConnection) Close(_ context.Context) error {
	m.closed++
	return nil
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.record(format, args...) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.record(format, args...) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.record(format, args...) }

func (m *mockLogger) record(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

// recordingReporter keeps the callbacks in the order they arrived.
type recordingReporter struct {
	events  []string
	results []pgsqlclient.FileResult
}

func (r *recordingReporter) Begin(total int) {
	r.events = append(r.events, fmt.Sprintf("begin %d", total))
}

func (r *recordingReporter) FileStarted(index, total int, path string) {
	r.events = append(r.events, fmt.Sprintf("start %d/%d %s", index, total, path))
}

func (r *recordingReporter) FileFinished(result pgsqlclient.FileResult) {
	r.events = append(r.events, fmt.Sprintf("finish %d/%d %s ok=%t", result.Index, result.Total, result.Path, result.Succeeded()))
	r.results = append(r.results, result)
}

func pgError(code, message string) *pgconn.PgError {
	return &pgconn.PgError{Severity: "ERROR", Code: code, Message: message}
}
