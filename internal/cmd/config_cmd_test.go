package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fitwheel/internal/config"
)

func TestConfigCmd_SetThenGet(t *testing.T) {
	paths := withTestDirs(t)
	cfg := config.DefaultConfig()

	out := captureStdout(t, func() {
		require.NoError(t, setConfig(cfg, paths, "units.system", "imperial"))
	})
	assert.Contains(t, out, "units.system = imperial")
	assert.Contains(t, out, paths.ConfigFile())

	loaded, err := config.LoadFromFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, "imperial", loaded.Units.System)

	out = captureStdout(t, func() {
		require.NoError(t, getConfig(loaded, "units.system"))
	})
	assert.Equal(t, "imperial\n", out)
}

func TestConfigCmd_List(t *testing.T) {
	paths := withTestDirs(t)
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Set("units.system", "imperial"))

	out := captureStdout(t, func() {
		require.NoError(t, listConfig(cfg, paths))
	})
	assert.Contains(t, out, "[picker]")
	assert.Contains(t, out, "[units]")
	assert.Contains(t, out, "[log]")
	assert.Contains(t, out, "(default metric)")
	assert.Contains(t, out, "(not set)", "log.file is empty by default")
	assert.NotContains(t, out, "Warning")
}

func TestConfigCmd_InvalidValueNotSaved(t *testing.T) {
	paths := withTestDirs(t)
	cfg := config.DefaultConfig()

	require.Error(t, setConfig(cfg, paths, "picker.fps", "0"))

	loaded, err := config.LoadFromFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, 60, loaded.Picker.FPS)
}

func TestConfigCmd_UnknownKey(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Error(t, getConfig(cfg, "daemon.socket_path"))
	assert.Error(t, getConfig(cfg, "nodot"))
}
