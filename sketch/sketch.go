// Package sketch drives a set of ribbons from an animation clock.
//
// A Sketch is not safe for concurrent use. Update is the only writer of the
// ribbon buffers and returns only after every buffer is complete, so a
// renderer reading after Update never sees a half-written frame.
package sketch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/ribbons/animation"
	"github.com/echoflaresat/ribbons/config"
	"github.com/echoflaresat/ribbons/curve"
	"github.com/echoflaresat/ribbons/ribbon"
)

// Variant picks the curve family and the frame schedule.
type Variant int

const (
	// Static is a single radial ribbon that does not move.
	Static Variant = iota
	// Dual sweeps dual-frequency ribbons along time with a shrinking width.
	Dual
	// Staggered fades phase-modulated ribbons in and out one after another.
	Staggered
)

var ErrUnknownVariant = errors.New("unknown sketch")

var variantNames = [...]string{
	Static:    "static",
	Dual:      "dual",
	Staggered: "staggered",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Renderer is the collaborator that uploads and draws the ribbon buffers.
type Renderer interface {
	Render(meshes []*ribbon.Mesh) error
	Resize(width, height int)
}

// Ribbon pairs fixed curve parameters with the mesh swept along them.
type Ribbon struct {
	Index  int
	Params curve.Params
	Mesh   *ribbon.Mesh
}

type Sketch struct {
	variant  Variant
	tuning   config.Tuning
	workers  int
	clock    *animation.Clock
	ribbons  []*Ribbon
	renderer Renderer
	logger   *slog.Logger
}

type Option func(*Sketch)

// WithRenderer attaches the collaborator used by Draw and Resize.
func WithRenderer(r Renderer) Option {
	return func(s *Sketch) { s.renderer = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sketch) { s.logger = l }
}

// New builds the ribbons described by cfg, drawing their parameters from
// src, and generates the buffers for frame start.
func New(cfg config.Config, src curve.Source, start uint64, opts ...Option) (*Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variant, err := ParseVariant(cfg.Sketch)
	if err != nil {
		return nil, err
	}
	clock, err := animation.NewClock(cfg.TotalFrames, start)
	if err != nil {
		return nil, err
	}

	s := &Sketch{
		variant: variant,
		tuning:  cfg.Tuning,
		workers: cfg.Workers,
		clock:   clock,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	count, segments := cfg.Ribbons, cfg.Segments
	if variant == Static {
		count = 1
		if segments == 0 {
			segments = cfg.Tuning.StaticSegments
		}
	} else if segments == 0 {
		segments = cfg.Tuning.Segments
	}

	for i := 0; i < count; i++ {
		mesh, err := ribbon.NewMesh(segments)
		if err != nil {
			return nil, err
		}
		s.ribbons = append(s.ribbons, &Ribbon{
			Index:  i,
			Params: s.drawParams(src),
			Mesh:   mesh,
		})
	}

	s.logger.Debug("sketch created",
		"variant", variant, "ribbons", count, "segments", segments, "frame", start)

	if err := s.regenerate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sketch) drawParams(src curve.Source) curve.Params {
	switch s.variant {
	case Dual:
		return curve.NewDual(src, s.tuning.FreqMin, s.tuning.FreqMax)
	case Staggered:
		return curve.NewPhase(src, s.tuning.P1Scale, s.tuning.P2Scale)
	}
	return curve.DefaultRadial()
}

func (s *Sketch) Variant() Variant { return s.variant }

func (s *Sketch) Frame() uint64 { return s.clock.Frame() }

func (s *Sketch) Progress() float64 { return s.clock.Progress() }

func (s *Sketch) Ribbons() []*Ribbon { return s.ribbons }

// Meshes lists the live buffers in ribbon order.
func (s *Sketch) Meshes() []*ribbon.Mesh {
	out := make([]*ribbon.Mesh, len(s.ribbons))
	for i, r := range s.ribbons {
		out[i] = r.Mesh
	}
	return out
}

// Update advances the clock by one frame and rewrites every ribbon.
func (s *Sketch) Update(ctx context.Context) error {
	s.clock.Tick()
	return s.regenerate(ctx)
}

func (s *Sketch) regenerate(ctx context.Context) error {
	stats := make([]ribbon.Stats, len(s.ribbons))

	if s.workers <= 1 {
		for i, r := range s.ribbons {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats[i] = ribbon.Regenerate(r.Mesh, r.Params, s.Schedule(i))
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i, r := range s.ribbons {
			step := s.Schedule(i)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				stats[i] = ribbon.Regenerate(r.Mesh, r.Params, step)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	degenerate := 0
	for _, st := range stats {
		degenerate += st.Degenerate
	}
	if degenerate > 0 {
		s.logger.Debug("degenerate ribbon frames",
			"frame", s.clock.Frame(), "vertices", degenerate)
	}
	return nil
}

// Draw hands the buffers to the renderer and clears their upload flags.
// Without a renderer it does nothing.
func (s *Sketch) Draw() error {
	if s.renderer == nil {
		return nil
	}
	meshes := s.Meshes()
	if err := s.renderer.Render(meshes); err != nil {
		return fmt.Errorf("render frame %d: %w", s.clock.Frame(), err)
	}
	for _, m := range meshes {
		m.MarkUploaded()
	}
	return nil
}

// Resize only informs the renderer; ribbon state does not depend on it.
func (s *Sketch) Resize(width, height int) {
	if s.renderer != nil {
		s.renderer.Resize(width, height)
	}
}

// Capture copies the current buffers so they can be read while the sketch
// moves on.
func (s *Sketch) Capture() Frame {
	meshes := make([]*ribbon.Mesh, len(s.ribbons))
	for i, r := range s.ribbons {
		meshes[i] = r.Mesh.Clone()
	}
	return Frame{
		Number:   s.clock.Frame(),
		Progress: s.clock.Progress(),
		Meshes:   meshes,
	}
}

// Frame is a detached copy of every ribbon buffer at one frame number.
type Frame struct {
	Number   uint64
	Progress float64
	Meshes   []*ribbon.Mesh
}
