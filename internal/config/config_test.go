package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.DebugEnabled())
}

func TestLoadOverridesLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minidb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\ndebug_commands_enabled: false\n"), 0666))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.DebugEnabled())
}

func TestSidecarPathEnvOverride(t *testing.T) {
	t.Setenv("MINIDB_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", SidecarPath("default.yaml"))
}

func TestSidecarPathDefault(t *testing.T) {
	t.Setenv("MINIDB_CONFIG", "")
	assert.Equal(t, "default.yaml", SidecarPath("default.yaml"))
}
