package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

type fakeRunner struct {
	calls   int
	config  pgsqlclient.RunConfig
	summary pgsqlclient.RunSummary
	err     error
}

func (f *fakeRunner) Run(_ context.Context, config pgsqlclient.RunConfig) (pgsqlclient.RunSummary, error) {
	f.calls++
	f.config = config
	return f.summary, f.err
}

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
	runner *fakeRunner
}

func newTestApp() *testApp {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	runner := &fakeRunner{}
	return &testApp{
		app: &app{
			out:    out,
			errOut: errOut,
			fs:     filesystem.NewOSFileSystem(),
			newRunner: func(_ io.Writer, _ pgsqlclient.RunConfig, _ pgsqlclient.Logger) pgsqlclient.Runner {
				return runner
			},
		},
		out:    out,
		errOut: errOut,
		runner: runner,
	}
}

func (a *testApp) exec(args ...string) error {
	return a.execute(context.Background(), args)
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("select 1;"), 0644))
	return path
}

func TestExecute_NoArgsPrintsHelp(t *testing.T) {
	a := newTestApp()

	err := a.exec()

	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Usage:")
	assert.Contains(t, a.out.String(), "--multiline")
	assert.Zero(t, a.runner.calls)
}

func TestExecute_HelpFlag(t *testing.T) {
	a := newTestApp()

	err := a.exec("--help")

	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "pgsqlclient [OPTIONS] file1 [file2 ...]")
	assert.Contains(t, a.out.String(), "-h, --host")
	assert.Zero(t, a.runner.calls)
}

func TestExecute_VersionFlag(t *testing.T) {
	a := newTestApp()

	err := a.exec("--version")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.out.String(), "pgsqlclient "), "got %q", a.out.String())
	assert.Zero(t, a.runner.calls)
}

func TestExecute_MissingFlagValue(t *testing.T) {
	file := writeFile(t, "a.sql")

	tests := []struct {
		name    string
		args    []string
		code    int
		message string
	}{
		{"host", []string{"-h"}, 1, "Error 1: The host is not specified for '-h' option."},
		{"database", []string{"-d"}, 2, "Error 2: The database name is not specified for '-d' option."},
		{"port", []string{"-p"}, 3, "Error 3: The server port is not specified for '-p' option."},
		{"user", []string{"-U"}, 4, "Error 4: The user name is not specified for '-U' option."},
		{"password", []string{"-P"}, 5, "Error 5: The user password is not specified for '-P' option."},
		{"long form", []string{"--host"}, 1, "Error 1: The host is not specified for '-h' option."},
		{"empty assignment", []string{"--port="}, 3, "Error 3: The server port is not specified for '-p' option."},
		{"after file", []string{file, "-U"}, 4, "Error 4: The user name is not specified for '-U' option."},
		{"after other flags", []string{"-h", "db.local", "-d"}, 2, "Error 2: The database name is not specified for '-d' option."},
		{"end of cluster", []string{"-sh"}, 1, "Error 1: The host is not specified for '-h' option."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp()

			err := a.exec(tt.args...)

			var usageErr *pgsqlclient.UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Equal(t, tt.code, usageErr.Code)
			assert.Equal(t, pgsqlclient.ExitUsageError, pgsqlclient.ExitCodeForError(err))
			assert.True(t, strings.HasPrefix(a.out.String(), tt.message+"\n"), "got %q", a.out.String())
			assert.Contains(t, a.out.String(), "Usage:", "help follows the error")
			assert.Zero(t, a.runner.calls, "no connection is attempted")
		})
	}
}

func TestExecute_ValueFlagConsumesNextToken(t *testing.T) {
	a := newTestApp()

	err := a.exec("-h", "-d")

	require.NoError(t, err)
	require.Equal(t, 1, a.runner.calls)
	assert.Equal(t, "-d", a.runner.config.Connection.Host)
	assert.Equal(t, pgsqlclient.DefaultDatabase, a.runner.config.Connection.Database)
}

func TestExecute_UnknownFile(t *testing.T) {
	existing := writeFile(t, "a.sql")
	a := newTestApp()

	err := a.exec(existing, "/definitely/not/here.sql")

	var usageErr *pgsqlclient.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, 6, usageErr.Code)
	assert.True(t, strings.HasPrefix(a.out.String(), "Error 6: File /definitely/not/here.sql does not exist.\n"))
	assert.Zero(t, a.runner.calls)
}

func TestExecute_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp()

	err := a.exec(dir)

	var usageErr *pgsqlclient.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, 6, usageErr.Code)
	assert.Zero(t, a.runner.calls)
}

func TestExecute_InvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000", "54 32"} {
		t.Run(port, func(t *testing.T) {
			a := newTestApp()

			err := a.exec("-p", port)

			var usageErr *pgsqlclient.UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Equal(t, 7, usageErr.Code)
			assert.Contains(t, a.out.String(), "Error 7: The server port '"+port+"' is not a valid port number.")
			assert.Zero(t, a.runner.calls)
		})
	}
}

func TestExecute_UnknownOption(t *testing.T) {
	tests := []struct {
		args   []string
		option string
	}{
		{[]string{"--nope"}, "--nope"},
		{[]string{"--nope=1"}, "--nope"},
		{[]string{"-x"}, "-x"},
		{[]string{"-mx"}, "-x"},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			a := newTestApp()

			err := a.exec(tt.args...)

			var usageErr *pgsqlclient.UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Equal(t, 8, usageErr.Code)
			assert.Contains(t, a.out.String(), "Error 8: Unknown option '"+tt.option+"'.")
			assert.Zero(t, a.runner.calls)
		})
	}
}

func TestExecute_BuildsRunConfig(t *testing.T) {
	first := writeFile(t, "b.sql")
	second := writeFile(t, "a.sql")
	a := newTestApp()

	err := a.exec("-h", "db.example.com", first, "-d", "app", "--port", "6543",
		"-U", "deployer", "-P", "s3cret", "-ms", "-v", second)

	require.NoError(t, err)
	require.Equal(t, 1, a.runner.calls)

	cfg := a.runner.config
	assert.Equal(t, pgsqlclient.ConnectionConfig{
		Host:     "db.example.com",
		Port:     6543,
		Database: "app",
		Username: "deployer",
		Password: "s3cret",
		AppName:  pgsqlclient.DefaultAppName,
	}, cfg.Connection)
	assert.Equal(t, pgsqlclient.ExecutionMode{Silent: true, Multiline: true}, cfg.Mode)
	assert.Equal(t, []string{first, second}, cfg.Files, "command line order is kept")
	assert.True(t, cfg.Verbose)
	assert.Contains(t, a.errOut.String(), "[VERBOSE] Target db.example.com:6543")
	assert.NotContains(t, a.errOut.String(), "s3cret")
}

func TestExecute_Defaults(t *testing.T) {
	file := writeFile(t, "a.sql")
	a := newTestApp()

	err := a.exec(file)

	require.NoError(t, err)
	assert.Equal(t, pgsqlclient.DefaultConnectionConfig(), a.runner.config.Connection)
	assert.Equal(t, pgsqlclient.ExecutionMode{}, a.runner.config.Mode)
	assert.False(t, a.runner.config.Verbose)
	assert.Empty(t, a.errOut.String())
}

func TestExecute_DoubleDashEndsOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "-odd.sql")
	require.NoError(t, os.WriteFile(path, []byte("select 1;"), 0644))
	a := newTestApp()

	err := a.exec("-s", "--", path)

	require.NoError(t, err)
	assert.Equal(t, []string{path}, a.runner.config.Files)
}

func TestExecute_FlagsOnlyStillRuns(t *testing.T) {
	a := newTestApp()

	err := a.exec("-d", "app")

	require.NoError(t, err)
	require.Equal(t, 1, a.runner.calls)
	assert.Empty(t, a.runner.config.Files)
}

func TestExecute_ScriptFailureIsNotRepeated(t *testing.T) {
	file := writeFile(t, "a.sql")
	a := newTestApp()
	a.runner.err = errors.Join(errors.New("1 of 1 script(s) failed"), pgsqlclient.ErrExecutionFailed)

	err := a.exec(file)

	require.ErrorIs(t, err, pgsqlclient.ErrExecutionFailed)
	assert.Equal(t, pgsqlclient.ExitExecutionFailed, pgsqlclient.ExitCodeForError(err))
	assert.Empty(t, a.out.String())
}

func TestExecute_ConnectionErrorIsPrinted(t *testing.T) {
	file := writeFile(t, "a.sql")
	a := newTestApp()
	a.runner.err = errors.Join(pgsqlclient.ErrConnectionFailed, errors.New("cannot reach localhost:5432"))

	err := a.exec(file)

	require.ErrorIs(t, err, pgsqlclient.ErrConnectionFailed)
	assert.Equal(t, pgsqlclient.ExitConnectionError, pgsqlclient.ExitCodeForError(err))
	assert.Contains(t, a.out.String(), "cannot reach localhost:5432")
	assert.NotContains(t, a.out.String(), "Usage:")
}

func TestExecute_InvalidBoolValue(t *testing.T) {
	a := newTestApp()

	err := a.exec("--silent=maybe")

	require.ErrorIs(t, err, pgsqlclient.ErrUsage)
	assert.Contains(t, a.out.String(), "Usage:")
	assert.Zero(t, a.runner.calls)
}
