package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, runInit(&out, dir, false, false))
	assert.Contains(t, out.String(), config.FileName)

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := runInit(&out, dir, false, false)
		assert.Error(t, err)
	})

	t.Run("force overwrites", func(t *testing.T) {
		assert.NoError(t, runInit(&out, dir, true, false))
	})
}

func TestRunInit_CUE(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, runInit(&out, dir, false, true))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.SchemaCUE, cfg.Schema.Source)

	manifest, err := os.ReadFile(filepath.Join(dir, "crudgen.cue"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "#Product:")
}

func TestRunInit_KeepsExistingManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crudgen.cue")
	require.NoError(t, os.WriteFile(path, []byte("package models\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, runInit(&out, dir, false, true))

	manifest, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package models\n", string(manifest))
}
