package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgsqlclient/internal/db"
	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/internal/logging"
	"github.com/vvka-141/pgsqlclient/internal/services"
	"github.com/vvka-141/pgsqlclient/internal/testinfra"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

// TestConnEnvVar names the environment variable holding a postgres:// URI of
// an existing server to run integration tests against.
const TestConnEnvVar = "PGSQLCLIENT_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSimplePostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: PGSQLCLIENT_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnvVar, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// ConnectionConfigFor returns the parameters of connString with the database
// replaced by dbName, as the command line would produce them.
func ConnectionConfigFor(t *testing.T, connString, dbName string) pgsqlclient.ConnectionConfig {
	t.Helper()

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	config.Database = dbName
	config.AppName = pgsqlclient.DefaultAppName
	return *config
}

// NewTestRunner creates a Runner wired like the CLI, using the real
// connector and filesystem and reporting through reporter.
func NewTestRunner(t *testing.T, reporter pgsqlclient.Reporter) pgsqlclient.Runner {
	t.Helper()

	return services.NewScriptRunner(
		db.NewConnector,
		filesystem.NewOSFileSystem(),
		reporter,
		logging.NewNullLogger(),
	)
}

// UniqueDBName returns prefix followed by a random suffix, so concurrent test
// runs against a shared server do not collide.
func UniqueDBName(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return prefix + "_" + suffix
}

// CreateTestDB creates a test database with the given name.
// Returns a cleanup function that should be called with t.Cleanup().
func CreateTestDB(t *testing.T, connString, dbName string) func() {
	t.Helper()

	ctx := context.Background()

	// Connect to management database
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}

	// Start from a clean slate if a previous run was interrupted
	dropQuery := fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)
	if _, err := pool.Exec(ctx, dropQuery); err != nil {
		t.Logf("Warning: Failed to drop stale database %s: %v", dbName, err)
	}

	createQuery := fmt.Sprintf("CREATE DATABASE %s", dbName)
	_, err = pool.Exec(ctx, createQuery)
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	pool.Close()
	t.Logf("✓ Created test database %s", dbName)

	return func() {
		CleanupTestDB(t, connString, dbName)
	}
}

// CleanupTestDB drops the test database.
// Safe to call multiple times (uses DROP DATABASE IF EXISTS).
func CleanupTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	// Terminate all connections to the database
	terminateQuery := `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`
	_, err = pool.Exec(ctx, terminateQuery, dbName)
	if err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	dropQuery := fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)
	_, err = pool.Exec(ctx, dropQuery)
	if err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	} else {
		t.Logf("✓ Cleaned up database %s", dbName)
	}
}

// GetTestPool creates a connection pool to the specified database for testing.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString, dbName string) *pgxpool.Pool {
	t.Helper()

	config := ConnectionConfigFor(t, connString, dbName)

	pool, err := pgxpool.New(context.Background(), db.BuildConnectionString(&config))
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}
