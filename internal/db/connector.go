package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgsqlclient/internal/logging"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

func configureConn(connConfig *pgx.ConnConfig, logger pgsqlclient.Logger) {
	connConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}
}

// StandardConnector implements the Connector interface for standard
// username/password authentication. It opens a single connection and does
// not retry.
type StandardConnector struct {
	config *pgsqlclient.ConnectionConfig
	logger pgsqlclient.Logger
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
// A nil logger discards diagnostics.
func NewStandardConnector(config *pgsqlclient.ConnectionConfig, logger pgsqlclient.Logger) *StandardConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &StandardConnector{
		config: config,
		logger: logger,
	}
}

// Connect opens the connection and verifies it with the startup handshake.
func (c *StandardConnector) Connect(ctx context.Context) (pgsqlclient.DBConnection, error) {
	connConfig, err := pgx.ParseConfig(BuildConnectionString(c.config))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", pgsqlclient.ErrInvalidConfig, err)
	}

	configureConn(connConfig, c.logger)

	c.logger.Verbose("Connecting to %s", RedactConnectionString(c.config))

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	c.logger.Verbose("Connected to %s (server process %d)", c.config.Address(), conn.PgConn().PID())
	return NewConnAdapter(conn), nil
}

// NewConnector is a factory function that creates the Connector used by the
// runner. It satisfies pgsqlclient.ConnectorFactory.
func NewConnector(config *pgsqlclient.ConnectionConfig, logger pgsqlclient.Logger) (pgsqlclient.Connector, error) {
	if config == nil {
		return nil, fmt.Errorf("connection config is nil: %w", pgsqlclient.ErrInvalidConfig)
	}
	return NewStandardConnector(config, logger), nil
}

var _ pgsqlclient.ConnectorFactory = NewConnector

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port (-h, -p)
  - Firewall blocking the connection

Original error: %w`, pgsqlclient.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, pgsqlclient.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: password authentication failed for database "%s"

Possible causes:
  - Wrong password (-P, $PGPASSWORD or ~/.pgpass)
  - Wrong user name (-U)

Original error: %w`, pgsqlclient.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`%w: database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, pgsqlclient.ErrConnectionFailed, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, pgsqlclient.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`%w: too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Stale sessions from earlier runs

Original error: %w`, pgsqlclient.ErrConnectionFailed, database, err)

	default:
		return fmt.Errorf("%w: failed to connect to database: %w", pgsqlclient.ErrConnectionFailed, err)
	}
}
