package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, c.SkipRows)
	assert.Equal(t, 1, c.SheetIndex)
	assert.Equal(t, "charts", c.ChartsDir)
	assert.True(t, c.RenderCharts)
	assert.Equal(t, 20, c.TopAreas)
	assert.Equal(t, 5, c.HeadRows)
	assert.Equal(t, 10, c.NormalizedHeadRows)
	assert.Equal(t, 30, c.HistBins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skip_rows: 5\ntop_areas: 7\n"), 0o644))
	t.Setenv("CENSUS_TOP_AREAS", "12")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.SkipRows)
	assert.Equal(t, 12, c.TopAreas)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{SkipRows: 2, SheetIndex: 1, ChartsDir: "out", RenderCharts: false, TopAreas: 3}
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SkipRows)
	assert.Equal(t, "out", got.ChartsDir)
	assert.False(t, got.RenderCharts)
	assert.Equal(t, 3, got.TopAreas)
}

func TestLoadRejectsNegativeSkip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skip_rows: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
