package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/popcal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `date_format: "02.01.2006"
position: top
`
	os.WriteFile(filepath.Join(dir, ".popcal.yaml"), []byte(yamlContent), 0644)

	o, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006", o.DateFormat)
	assert.Equal(t, "top", o.Position)
	assert.Empty(t, o.Trigger)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(dir)
	assert.ErrorIs(t, err, ErrNoProjectConfig)
}

func TestRead_Invalid(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".popcal.yaml"), []byte("{{{"), 0644)
	_, err := Read(dir)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProjectConfig)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	o := Overrides{Trigger: "focus", WeekStart: "sunday"}
	require.NoError(t, Write(dir, o))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, Overrides{Position: "left"}))

	sub := filepath.Join(root, "src", "pkg")
	os.MkdirAll(sub, 0755)

	found, err := FindRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestApply(t *testing.T) {
	cfg := Overrides{Position: "top", DateFormat: "02/01/2006"}.Apply(config.Default())
	assert.Equal(t, "top", cfg.Position)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
	assert.Equal(t, "click", cfg.Trigger, "empty overrides keep the global value")
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, Overrides{Scroll: "close"}))
	sub := filepath.Join(root, "a")
	os.MkdirAll(sub, 0755)

	cfg, used, err := Resolve(sub, config.Default())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".popcal.yaml"), used)
	assert.Equal(t, "close", cfg.Scroll)
}
