package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/config"
)

// clearEnv unsets every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TODO_BACKEND", "TODO_DATA_DIR", "TODO_TIMEOUT", "TODO_STRICT_IDS", "STRICT_IDS"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0o600))
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.BackendBlob, cfg.Backend)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
	assert.False(t, cfg.StrictIDs)
	assert.Equal(t, filepath.Join(dir, "storage"), cfg.BlobPath())
	assert.Equal(t, filepath.Join(dir, "todos.db"), cfg.DatabasePath())
}

func TestNew_DefaultDirFromXDG(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := config.New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "todo"), cfg.Dir)
}

func TestNew_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := t.TempDir()
	writeConfig(t, dir, "backend: sqlite\ndata_dir: "+data+"\ntimeout: 250ms\nstrict_ids: true\n")

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.StrictIDs)
	assert.Equal(t, filepath.Join(data, "todos.db"), cfg.DatabasePath())
}

func TestNew_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "backend: sqlite\ntimeout: 1s\n")

	t.Setenv("TODO_BACKEND", "blob")
	t.Setenv("TODO_TIMEOUT", "0s")
	t.Setenv("TODO_STRICT_IDS", "true")

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, config.BackendBlob, cfg.Backend)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.StrictIDs)
}

func TestNew_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_BACKEND", "redis")

	_, err := config.New(t.TempDir())
	assert.ErrorContains(t, err, "unknown backend")
}

func TestNew_NegativeTimeout(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: -1s\n")

	_, err := config.New(dir)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestNew_FileTimeoutZeroDisables(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: 0\n")

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Zero(t, cfg.Timeout)
}

func TestNew_FileTimeoutNeedsUnit(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: 5\n")

	_, err := config.New(dir)
	assert.ErrorContains(t, err, "timeout 5 needs a unit")
}

func TestNew_FileTimeoutNotADuration(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: soon\n")

	_, err := config.New(dir)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestNew_FileKeepsDefaultsForAbsentKeys(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "strict_ids: true\n")

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendBlob, cfg.Backend)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
	assert.True(t, cfg.StrictIDs)
}

func TestNew_BadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "backend: [unterminated\n")

	_, err := config.New(dir)
	assert.ErrorContains(t, err, "invalid config.yaml")
}

func TestNew_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_TIMEOUT", "soon")

	_, err := config.New(t.TempDir())
	assert.ErrorContains(t, err, "invalid environment")
}
