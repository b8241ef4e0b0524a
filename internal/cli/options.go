package cli

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/vvka-141/pgsqlclient/internal/db"
	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

// options holds the raw flag values of one invocation.
type options struct {
	host      string
	database  string
	port      string
	user      string
	password  string
	multiline bool
	silent    bool
	verbose   bool
}

func (o *options) register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.host, "host", "h", pgsqlclient.DefaultHost, "Server host name or address")
	flags.StringVarP(&o.database, "database", "d", pgsqlclient.DefaultDatabase, "Database name")
	flags.StringVarP(&o.port, "port", "p", strconv.Itoa(pgsqlclient.DefaultPort), "Server port")
	flags.StringVarP(&o.user, "user", "U", pgsqlclient.DefaultUser, "User name")
	flags.StringVarP(&o.password, "password", "P", "", "User password (PGPASSWORD or ~/.pgpass when omitted)")
	flags.BoolVarP(&o.multiline, "multiline", "m", false, "Send each file as one command instead of splitting it at ';'")
	flags.BoolVarP(&o.silent, "silent", "s", false, "Print only the errors of failed files")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Print diagnostics to stderr")

	// -h is the host, so help and version are long-only.
	flags.Bool("help", false, "Show this help")
	flags.Bool("version", false, "Show version information")
}

// buildRunConfig validates the positional files and the port and produces
// the configuration of the run.
func (o *options) buildRunConfig(fs filesystem.FileSystemProvider, files []string) (pgsqlclient.RunConfig, error) {
	for _, file := range files {
		if !filesystem.IsRegularFile(fs, file) {
			return pgsqlclient.RunConfig{}, pgsqlclient.NewUsageError(6, "File %s does not exist.", file)
		}
	}

	port, err := db.ParsePort(o.port)
	if err != nil {
		return pgsqlclient.RunConfig{}, pgsqlclient.NewUsageError(7, "The server port '%s' is not a valid port number.", o.port)
	}

	return pgsqlclient.RunConfig{
		Connection: pgsqlclient.ConnectionConfig{
			Host:     o.host,
			Port:     port,
			Database: o.database,
			Username: o.user,
			Password: o.password,
			AppName:  pgsqlclient.DefaultAppName,
		},
		Mode: pgsqlclient.ExecutionMode{
			Silent:    o.silent,
			Multiline: o.multiline,
		},
		Files:   append([]string(nil), files...),
		Verbose: o.verbose,
	}, nil
}
