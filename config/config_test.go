package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxshaw/sqlbuilder/conn"
)

const sample = `database:
  default: "pgsql:postgres://localhost/shop"
  read: "pgsql:postgres://replica/shop"
key_column: Uuid
log_sql: false
gen:
  models: internal/models
`

func writeConfig(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}

func TestLoad_Explicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.yaml")

	cfg, source, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "Uuid", cfg.KeyColumn)
	assert.False(t, cfg.LogSQL)
	assert.Equal(t, "internal/models", cfg.Gen.Models)
	assert.Equal(t, "models", cfg.Gen.Output)
	assert.Equal(t, conn.Context{
		Default: "pgsql:postgres://localhost/shop",
		Read:    "pgsql:postgres://replica/shop",
	}, cfg.Connections())
}

func TestLoad_MissingExplicit(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_Discovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	path := writeConfig(t, root, "sqlbuilder.yml")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "Uuid", cfg.KeyColumn)
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, source)
	assert.Equal(t, "Id", cfg.KeyColumn)
	assert.True(t, cfg.LogSQL)
	assert.Equal(t, "models", cfg.Gen.Models)
	assert.Empty(t, cfg.Database.Default)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "sqlbuilder.yaml")
	t.Setenv("SQLBUILDER_KEY_COLUMN", "Code")
	t.Setenv("SQLBUILDER_DATABASE_DEFAULT", "sqlite:file::memory:")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Code", cfg.KeyColumn)
	assert.Equal(t, "sqlite:file::memory:", cfg.Database.Default)
	assert.Equal(t, "pgsql:postgres://replica/shop", cfg.Database.Read)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
