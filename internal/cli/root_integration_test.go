package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	testhelpers "github.com/vvka-141/pgsqlclient/internal/testing"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

func TestExecute_EndToEnd(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)

	testDB := testhelpers.UniqueDBName("pgsqlclient_cli")
	cleanup := testhelpers.CreateTestDB(t, connString, testDB)
	t.Cleanup(cleanup)

	conn := testhelpers.ConnectionConfigFor(t, connString, testDB)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sql")
	bad := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(good, []byte("CREATE TABLE t(id int);\nINSERT INTO t VALUES (1);\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("SELECT * FROM nowhere;\n"), 0644))

	var out bytes.Buffer
	a := &app{
		out:       &out,
		errOut:    &bytes.Buffer{},
		fs:        filesystem.NewOSFileSystem(),
		newRunner: newScriptRunner,
	}

	err := a.execute(context.Background(), []string{
		"-h", conn.Host,
		"-p", strconv.Itoa(conn.Port),
		"-d", conn.Database,
		"-U", conn.Username,
		"-P", conn.Password,
		good, bad,
	})

	require.ErrorIs(t, err, pgsqlclient.ErrExecutionFailed)
	assert.Equal(t, pgsqlclient.ExitExecutionFailed, pgsqlclient.ExitCodeForError(err))

	report := out.String()
	assert.Contains(t, report, "\nPerform:\n1/2: "+good+" (SUCCESSFUL).\n")
	assert.Contains(t, report, "2/2: "+bad+" (ERRORs).\nReasons:\n")
	assert.Contains(t, report, `relation "nowhere" does not exist`)
	assert.Contains(t, report, "\nSELECT * FROM nowhere;\n")
}

func TestExecute_ConnectionRefused(t *testing.T) {
	testhelpers.SkipIfShort(t)

	file := filepath.Join(t.TempDir(), "a.sql")
	require.NoError(t, os.WriteFile(file, []byte("select 1;"), 0644))

	var out bytes.Buffer
	a := &app{
		out:       &out,
		errOut:    &bytes.Buffer{},
		fs:        filesystem.NewOSFileSystem(),
		newRunner: newScriptRunner,
	}

	err := a.execute(context.Background(), []string{"-h", "127.0.0.1", "-p", "1", file})

	require.ErrorIs(t, err, pgsqlclient.ErrConnectionFailed)
	assert.Equal(t, pgsqlclient.ExitConnectionError, pgsqlclient.ExitCodeForError(err))
	assert.NotContains(t, out.String(), "Perform:")
	assert.NotEmpty(t, out.String())
}
