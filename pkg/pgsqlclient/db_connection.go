package pgsqlclient

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection abstracts the database operations needed to run scripts.
// This interface decouples the runner from the concrete pgx connection type
// and lets tests substitute a scripted fake.
//
// Thread-Safety: NOT safe for concurrent use; it wraps a single connection.
type DBConnection interface {
	// Exec sends sql to the server. Without arguments the text is sent over the
	// simple query protocol, so it may contain several statements.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Close terminates the connection. Safe to call once per connection.
	Close(ctx context.Context) error
}
