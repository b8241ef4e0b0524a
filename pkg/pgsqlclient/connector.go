package pgsqlclient

import "context"

// Connector opens the single database connection used for a run.
// Different implementations may handle different authentication methods.
type Connector interface {
	// Connect establishes a connection to the database.
	// The caller must Close the returned connection when done.
	Connect(ctx context.Context) (DBConnection, error)
}

// ConnectorFactory builds a Connector for the given connection parameters.
type ConnectorFactory func(config *ConnectionConfig, logger Logger) (Connector, error)
