package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// BuildConnectionString converts a ConnectionConfig to a PostgreSQL
// keyword/value connection string as understood by libpq and pgx:
//
//	host=localhost port=5432 dbname=postgres user=postgres application_name=pgsqlclient
//
// An empty password is left out so the driver can fall back to $PGPASSWORD
// or the password file.
func BuildConnectionString(config *pgsqlclient.ConnectionConfig) string {
	return buildConnectionString(config, config.Password)
}

// RedactConnectionString is BuildConnectionString with the password masked,
// for use in log output.
func RedactConnectionString(config *pgsqlclient.ConnectionConfig) string {
	password := ""
	if config.Password != "" {
		password = "xxxxx"
	}
	return buildConnectionString(config, password)
}

func buildConnectionString(config *pgsqlclient.ConnectionConfig, password string) string {
	parts := []string{
		"host=" + quoteDSNValue(config.Host),
		"port=" + strconv.Itoa(config.Port),
		"dbname=" + quoteDSNValue(config.Database),
	}
	if config.Username != "" {
		parts = append(parts, "user="+quoteDSNValue(config.Username))
	}
	if password != "" {
		parts = append(parts, "password="+quoteDSNValue(password))
	}
	if config.AppName != "" {
		parts = append(parts, "application_name="+quoteDSNValue(config.AppName))
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes a value when it is empty or contains characters
// that are significant to the keyword/value syntax.
func quoteDSNValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\r\n'\\=") {
		return value
	}
	return "'" + dsnEscaper.Replace(value) + "'"
}

// ParsePort converts a port argument to a number in 1..65535.
func ParsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", value, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q: out of range 1-65535", value)
	}
	return port, nil
}

// ParseConnectionString parses a PostgreSQL URI into a ConnectionConfig.
// Missing components take the command-line defaults.
//
// Format: postgresql://[user[:password]@][host][:port][/dbname][?...]
func ParseConnectionString(connStr string) (*pgsqlclient.ConnectionConfig, error) {
	if connStr == "" {
		return nil, fmt.Errorf("connection string is empty")
	}
	if !strings.HasPrefix(connStr, "postgresql://") && !strings.HasPrefix(connStr, "postgres://") {
		return nil, fmt.Errorf("unrecognized connection string format")
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URI: %w", err)
	}

	config := pgsqlclient.DefaultConnectionConfig()

	if u.Hostname() != "" {
		config.Host = u.Hostname()
	}
	if u.Port() != "" {
		port, err := ParsePort(u.Port())
		if err != nil {
			return nil, err
		}
		config.Port = port
	}

	if u.User != nil {
		config.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			config.Password = pass
		}
	}

	if len(u.Path) > 1 {
		config.Database = strings.TrimPrefix(u.Path, "/")
	}

	if appName := u.Query().Get("application_name"); appName != "" {
		config.AppName = appName
	}

	return &config, nil
}
