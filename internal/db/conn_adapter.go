package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

// ConnAdapter adapts *pgx.Conn to implement the pgsqlclient.DBConnection interface.
// This decouples the runner from pgx-specific types.
//
// Thread-Safety: NOT safe for concurrent use (pgx.Conn is not).
type ConnAdapter struct {
	conn *pgx.Conn
}

// NewConnAdapter creates a new ConnAdapter wrapping the given connection.
func NewConnAdapter(conn *pgx.Conn) *ConnAdapter {
	return &ConnAdapter{conn: conn}
}

// Exec executes sql without returning rows. pgx uses the simple query protocol
// when no arguments are given, so sql may hold several statements.
func (a *ConnAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.conn.Exec(ctx, sql, args...)
}

// Close terminates the connection.
func (a *ConnAdapter) Close(ctx context.Context) error {
	return a.conn.Close(ctx)
}

// Verify ConnAdapter implements DBConnection at compile time
var _ pgsqlclient.DBConnection = (*ConnAdapter)(nil)
