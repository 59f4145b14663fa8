// Package config holds the construction-time settings of a sketch.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/mmap"
)

var ErrInvalid = errors.New("invalid config")

// Config is read once when a sketch is built.
type Config struct {
	// Sketch is one of "static", "dual" or "staggered".
	Sketch string `toml:"sketch"`

	// Ribbons is ignored by the static sketch, which always has one.
	Ribbons int `toml:"ribbons"`

	// Segments per ribbon. Zero picks the sketch's own default.
	Segments int `toml:"segments"`

	TotalFrames uint64 `toml:"total_frames"`
	Seed        int64  `toml:"seed"`

	// Workers bounds how many ribbons are regenerated at once. Zero or one
	// regenerates them one after another.
	Workers int `toml:"workers"`

	Tuning Tuning `toml:"tuning"`
}

// Tuning collects the easing and sampling constants. They have no
// derivation beyond looking right.
type Tuning struct {
	StaticT0       float64 `toml:"static_t0"`
	StaticDt       float64 `toml:"static_dt"`
	StaticWidth    float64 `toml:"static_width"`
	StaticSegments int     `toml:"static_segments"`

	FreqMin float64 `toml:"freq_min"`
	FreqMax float64 `toml:"freq_max"`
	P1Scale float64 `toml:"p1_scale"`
	P2Scale float64 `toml:"p2_scale"`

	Dt       float64 `toml:"dt"`
	DtScale  float64 `toml:"dt_scale"`
	T0Rate   float64 `toml:"t0_rate"`
	T0Offset float64 `toml:"t0_offset"`

	WidthCap  float64 `toml:"width_cap"`
	TwScale   float64 `toml:"tw_scale"`
	PhaseRate float64 `toml:"phase_rate"`

	Segments int `toml:"segments"`
}

func DefaultTuning() Tuning {
	return Tuning{
		StaticT0:       30,
		StaticDt:       0.08,
		StaticWidth:    0.08,
		StaticSegments: 500,

		FreqMin: -8,
		FreqMax: 8,
		P1Scale: 6,
		P2Scale: 20,

		Dt:       0.01211,
		DtScale:  0.075,
		T0Rate:   0.02171,
		T0Offset: 20,

		WidthCap:  0.05,
		TwScale:   0.1,
		PhaseRate: 0.01,

		Segments: 200,
	}
}

func Default() Config {
	return Config{
		Sketch:      "dual",
		Ribbons:     20,
		TotalFrames: 240,
		Seed:        1,
		Tuning:      DefaultTuning(),
	}
}

// Validate reports the first setting that cannot build a sketch.
func (c Config) Validate() error {
	switch {
	case c.Ribbons < 1:
		return fmt.Errorf("%w: ribbons = %d", ErrInvalid, c.Ribbons)
	case c.Segments < 0:
		return fmt.Errorf("%w: segments = %d", ErrInvalid, c.Segments)
	case c.TotalFrames == 0:
		return fmt.Errorf("%w: total_frames must be positive", ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers = %d", ErrInvalid, c.Workers)
	case c.Tuning.FreqMin > c.Tuning.FreqMax:
		return fmt.Errorf("%w: freq_min %v > freq_max %v", ErrInvalid, c.Tuning.FreqMin, c.Tuning.FreqMax)
	case c.Tuning.StaticSegments < 1 || c.Tuning.Segments < 1:
		return fmt.Errorf("%w: default segment counts must be positive", ErrInvalid)
	}
	return nil
}

// Load reads a TOML file over the defaults. Keys the file does not set keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer reader.Close()

	cfg, err := Decode(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
