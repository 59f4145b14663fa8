// Package curve evaluates the closed-form 3D paths that ribbons are swept along.
//
// Every variant is a pure function of (t, phase) and is total over the reals,
// so there are no error returns on evaluation.
package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/echoflaresat/ribbons/vectors"
)

// Field maps a curve parameter and an optional phase to a point in space.
type Field interface {
	Evaluate(t, phase float64) vectors.Vec3
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(t, phase float64) vectors.Vec3

func (f FieldFunc) Evaluate(t, phase float64) vectors.Vec3 {
	return f(t, phase)
}

// Kind selects one of the curve variants.
type Kind int

const (
	Radial Kind = iota
	DualFrequency
	PhaseModulated
)

var ErrUnknownKind = errors.New("unknown curve kind")

var kindNames = [...]string{
	Radial:         "radial",
	DualFrequency:  "dual",
	PhaseModulated: "phase",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the names printed by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Params is the per-ribbon configuration of a curve. Only the payload that
// matches Kind is meaningful. Params are fixed once drawn.
type Params struct {
	Kind   Kind
	Radial RadialParams
	Dual   DualParams
	Phase  PhaseParams
}

// Evaluate dispatches to the variant selected by Kind.
func (p Params) Evaluate(t, phase float64) vectors.Vec3 {
	switch p.Kind {
	case Radial:
		return p.Radial.Evaluate(t, phase)
	case DualFrequency:
		return p.Dual.Evaluate(t, phase)
	case PhaseModulated:
		return p.Phase.Evaluate(t, phase)
	}
	panic(fmt.Sprintf("curve: %v", p.Kind))
}

// RadialParams describes a curve whose radius breathes with frequency F0 while
// each axis oscillates with its own frequency.
type RadialParams struct {
	F0         float64
	F1, F2, F3 float64
}

// Frequencies of the single static ribbon.
const (
	RadialF0 = 1.82845
	RadialF1 = 1.42482
	RadialF2 = 1.28472
	RadialF3 = 1.11723
)

func DefaultRadial() Params {
	return Params{
		Kind: Radial,
		Radial: RadialParams{
			F0: RadialF0,
			F1: RadialF1,
			F2: RadialF2,
			F3: RadialF3,
		},
	}
}

// Evaluate ignores phase.
func (p RadialParams) Evaluate(t, _ float64) vectors.Vec3 {
	r := 1 + 0.5*math.Sin(t*p.F0)
	return vectors.Vec3{
		X: math.Sin(t*p.F1) * r,
		Y: math.Sin(t*p.F2) * r,
		Z: math.Sin(t*p.F3) * r,
	}
}

// DualParams is a pair of frequencies; the curve lies on the unit sphere.
type DualParams struct {
	Freq1, Freq2 float64
}

// Evaluate ignores phase.
func (p DualParams) Evaluate(t, _ float64) vectors.Vec3 {
	s2 := math.Sin(t * p.Freq2)
	return vectors.Vec3{
		X: math.Sin(t*p.Freq1) * s2,
		Y: math.Cos(t * p.Freq2),
		Z: math.Cos(t*p.Freq1) * s2,
	}
}

// PhaseParams holds two frequency vectors. P2 modulates the phase of each
// axis of P1. Seed is a per-ribbon pair in [0,1) the caller may use to
// offset the phase.
type PhaseParams struct {
	P1, P2 vectors.Vec3
	Seed   [2]float64
}

func (p PhaseParams) Evaluate(t, phase float64) vectors.Vec3 {
	axis := func(k int) float64 {
		mod := 1 + math.Sin(p.P2.Component(k)*t+phase)*0.5
		return math.Sin(p.P1.Component(k)*t + mod)
	}
	return vectors.Vec3{X: axis(0), Y: axis(1), Z: axis(2)}
}
