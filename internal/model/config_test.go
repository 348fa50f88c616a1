package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, SkinQuest, cfg.Display.Skin)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_ReadsPartialFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"storage:\n  driver: file\ndisplay:\n  skin: task\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, SkinTask, cfg.Display.Skin)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultDataDir(), cfg.Storage.Path)
}

func TestSaveConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		Storage: StorageConfig{Driver: "file", Path: "/tmp/questline"},
		Display: DisplayConfig{Skin: SkinTask, Theme: "dark"},
		Log:     LogConfig{Level: "debug"},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
