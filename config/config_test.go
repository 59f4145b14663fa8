package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.toml")
	body := `
sketch = "staggered"
ribbons = 6
seed = 99

[tuning]
tw_scale = 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staggered", cfg.Sketch)
	assert.Equal(t, 6, cfg.Ribbons)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 0.2, cfg.Tuning.TwScale)

	// untouched keys keep their defaults
	assert.Equal(t, uint64(240), cfg.TotalFrames)
	assert.Equal(t, 0.01211, cfg.Tuning.Dt)
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		inv  bool
	}{
		{"unknown key", `colour = "red"`, false},
		{"no ribbons", `ribbons = 0`, true},
		{"no cycle", `total_frames = 0`, true},
		{"inverted range", "[tuning]\nfreq_min = 3.0\nfreq_max = 1.0", true},
		{"negative workers", `workers = -2`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.body))
			require.Error(t, err)
			if c.inv {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
