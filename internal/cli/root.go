package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgsqlclient/internal/db"
	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/internal/logging"
	"github.com/vvka-141/pgsqlclient/internal/services"
	"github.com/vvka-141/pgsqlclient/internal/ui"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

const longDescription = `Connects to one PostgreSQL server and executes SQL script files against it,
reporting for every file whether it succeeded.

By default each file is split at every ';' and the statements are sent one by
one; a failed statement is reported and the next one still runs. With
--multiline the whole file is sent as a single command, which keeps function
bodies and DO blocks intact.

The password may be omitted; PGPASSWORD and ~/.pgpass are consulted then.

Exit Codes:
  0  - Success (also after printing help or version)
  1  - General error
  2  - CLI usage error (Error 1-8)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  13 - At least one script reported errors`

// runnerFactory builds the Runner for one invocation.
type runnerFactory func(out io.Writer, config pgsqlclient.RunConfig, logger pgsqlclient.Logger) pgsqlclient.Runner

func newScriptRunner(out io.Writer, config pgsqlclient.RunConfig, logger pgsqlclient.Logger) pgsqlclient.Runner {
	return services.NewScriptRunner(
		db.NewConnector,
		filesystem.NewOSFileSystem(),
		ui.NewConsoleReporter(out, config.Mode.Silent),
		logger,
	)
}

// app carries the process-level dependencies of the command.
type app struct {
	out       io.Writer // report, help and error messages
	errOut    io.Writer // verbose diagnostics
	fs        filesystem.FileSystemProvider
	newRunner runnerFactory
}

// Execute runs the command line of the current process.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		out:       os.Stdout,
		errOut:    os.Stderr,
		fs:        filesystem.NewOSFileSystem(),
		newRunner: newScriptRunner,
	}
	return a.execute(ctx, os.Args[1:])
}

func (a *app) execute(ctx context.Context, args []string) error {
	opts := &options{}
	cmd := a.newRootCmd(opts)

	if len(args) == 0 {
		return cmd.Help()
	}

	if err := checkFlagValues(cmd.Flags(), args); err != nil {
		a.reportError(cmd, err)
		return err
	}

	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	a.reportError(cmd, err)
	return err
}

func (a *app) newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pgsqlclient [OPTIONS] file1 [file2 ...]",
		Short:         "Execute SQL script files against a PostgreSQL server",
		Long:          longDescription,
		Args:          cobra.ArbitraryArgs,
		Version:       versionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), opts, args)
		},
	}

	cmd.SetOut(a.out)
	cmd.SetErr(a.out)
	cmd.SetVersionTemplate("pgsqlclient {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", pgsqlclient.ErrUsage, err)
	})

	opts.register(cmd.Flags())
	return cmd
}

func (a *app) run(ctx context.Context, opts *options, args []string) error {
	config, err := opts.buildRunConfig(a.fs, args)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLoggerTo(a.errOut, config.Verbose)
	logger.Verbose("Target %s, database %s, user %s, %s mode",
		config.Connection.Address(), config.Connection.Database, config.Connection.Username, config.Mode)

	runner := a.newRunner(a.out, config, logger)
	_, err = runner.Run(ctx, config)
	return err
}

// reportError prints err for the user. Script failures were already
// reported file by file and are not repeated.
func (a *app) reportError(cmd *cobra.Command, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, pgsqlclient.ErrUsage):
		fmt.Fprintln(a.out, err.Error())
		fmt.Fprintln(a.out)
		_ = cmd.Help()
	case errors.Is(err, pgsqlclient.ErrExecutionFailed):
		return
	default:
		fmt.Fprintln(a.out, err.Error())
	}
}
