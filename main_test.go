package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/ribbons/config"
	"github.com/echoflaresat/ribbons/render"
	"github.com/echoflaresat/ribbons/sketch"
)

func parseArgs(t *testing.T, args ...string) (*flag.FlagSet, options) {
	t.Helper()
	fs := flag.NewFlagSet("ribbons", flag.ContinueOnError)
	opts := defineFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs, opts
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.toml")
	require.NoError(t, os.WriteFile(path, []byte("sketch = \"staggered\"\nribbons = 4\nworkers = 2\n"), 0o644))

	fs, opts := parseArgs(t, "-config", path, "-ribbons", "9", "-seed", "3")
	cfg, err := loadConfig(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, "staggered", cfg.Sketch)
	assert.Equal(t, 9, cfg.Ribbons)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 2, cfg.Workers)

	fs, opts = parseArgs(t, "-sketch", "static", "-workers", "1")
	cfg, err = loadConfig(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, "static", cfg.Sketch)
	assert.Equal(t, 1, cfg.Workers)

	fs, opts = parseArgs(t, "-total", "0")
	_, err = loadConfig(fs, opts)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestParseFrames(t *testing.T) {
	frames, err := parseFrames("10, 20,,10")
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 10}, frames)

	_, err = parseFrames(" , ")
	assert.ErrorIs(t, err, errNoFrames)

	_, err = parseFrames("3,x")
	assert.Error(t, err)
}

func smallPreview() *render.Preview {
	return render.NewPreview(32, 32, render.NewCamera(4, 50, 0, 0), render.DefaultTheme())
}

func TestExportRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Ribbons = 3
	cfg.Segments = 16

	preview := smallPreview()
	s, err := sketch.New(cfg, rand.New(rand.NewSource(cfg.Seed)), 0, sketch.WithRenderer(preview))
	require.NoError(t, err)

	require.NoError(t, exportRun(context.Background(), s, preview, 5, 2, dir, "png"))
	for f := uint64(1); f <= 5; f++ {
		_, err := os.Stat(framePath(dir, f, "png"))
		assert.NoError(t, err)
	}
	assert.Equal(t, uint64(5), s.Frame())
}

func TestExportRunReportsEncodeErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Ribbons = 1
	cfg.Segments = 8

	preview := smallPreview()
	s, err := sketch.New(cfg, rand.New(rand.NewSource(1)), 0, sketch.WithRenderer(preview))
	require.NoError(t, err)

	err = exportRun(context.Background(), s, preview, 3, 1, t.TempDir(), "bmp")
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
}

func TestExportAt(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Sketch = "staggered"
	cfg.Ribbons = 2
	cfg.Segments = 16

	require.NoError(t, exportAt(cfg, smallPreview(), []uint64{120, 7, 120}, dir, "tiff"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.FileExists(t, framePath(dir, 120, "tiff"))
}
