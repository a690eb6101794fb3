package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg, first, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.True(t, first)
	require.True(t, cfg.DemoData)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.FileExists(t, path)

	again, first, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.False(t, first)
	require.Equal(t, cfg.Actor, again.Actor)
}

func TestLoadOrCreateEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, Save(path, &Config{Actor: "file_user", Database: DatabaseConfig{Driver: "SQLite"}}))

	t.Setenv("TMS_ACTOR", "env_user")
	t.Setenv("TMS_DEMO_DATA", "false")

	cfg, _, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "env_user", cfg.Actor)
	require.False(t, cfg.DemoData)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
}

func TestLoadOrCreateBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nie json"), 0o644))

	_, _, err := LoadOrCreate(path)
	require.Error(t, err)
}
