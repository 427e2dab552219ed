package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/popcal/cmd/popcal/tui"
	"github.com/ruminaider/popcal/internal/config"
	"github.com/ruminaider/popcal/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, logFile, debug = "", "", false
		pickValue, pickTitle, pickPosition, pickTrigger, pickScroll = "", "", "", "", ""
	})
}

func TestNormalize(t *testing.T) {
	cfg := config.Default()

	out, err := normalize(tui.ModeDate, cfg, " 2024-03-15 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", out)

	out, err = normalize(tui.ModeRange, cfg, "2024-03-01 - 2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 - 2024-03-09", out)

	_, err = normalize(tui.ModeDate, cfg, "March 15")
	assert.Error(t, err)

	for _, half := range []string{"2024-03-15 -", "2024-03-15 - ", "2024-03-15"} {
		_, err = normalize(tui.ModeRange, cfg, half)
		assert.ErrorIs(t, err, tui.ErrIncompleteRange, half)
	}
}

func TestLoadConfig(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	t.Run("defaults without a file", func(t *testing.T) {
		cfg, source, err := loadConfig("")
		require.NoError(t, err)
		assert.Empty(t, source)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("toml fallback and flag overrides", func(t *testing.T) {
		path := filepath.Join(dir, "popcal", "config.toml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("position = \"top\"\n"), 0o644))
		pickTrigger = "hover"

		cfg, source, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, path, source)
		assert.Equal(t, "top", cfg.Position)
		assert.Equal(t, "hover", cfg.Trigger)
	})

	t.Run("invalid override", func(t *testing.T) {
		pickPosition = "diagonal"
		_, _, err := loadConfig("")
		assert.Error(t, err)
		pickPosition = ""
	})

	t.Run("explicit missing file", func(t *testing.T) {
		configPath = filepath.Join(dir, "missing.yaml")
		_, _, err := loadConfig("")
		assert.Error(t, err)
		configPath = ""
	})
}

func TestLoadConfig_ProjectOverrides(t *testing.T) {
	resetFlags(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	work := t.TempDir()
	require.NoError(t, project.Write(work, project.Overrides{DateFormat: "02/01/2006"}))
	pickPosition = "left"

	cfg, source, err := loadConfig(work)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, ".popcal.yaml"), source)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
	assert.Equal(t, "left", cfg.Position, "flags win over the project file")
}

func TestNewLogger(t *testing.T) {
	logger, closeLog, err := newLogger("", false)
	require.NoError(t, err)
	logger.Info("discarded")
	assert.NoError(t, closeLog())

	path := filepath.Join(t.TempDir(), "logs", "popcal.log")
	logger, closeLog, err = newLogger(path, true)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "k=v")
}

func TestMouseOption(t *testing.T) {
	assert.NotNil(t, mouseOption("hover"))
	assert.NotNil(t, mouseOption("click"))
}
