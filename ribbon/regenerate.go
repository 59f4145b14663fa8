package ribbon

import (
	"math"

	"github.com/echoflaresat/ribbons/curve"
	"github.com/echoflaresat/ribbons/vectors"
)

// Width gives the half-width of the strip at vertex i of segments.
type Width interface {
	At(i, segments int) float64
}

// Constant is a uniform half-width.
type Constant float64

func (c Constant) At(_, _ int) float64 {
	return float64(c)
}

// Taper narrows the strip to zero at both ends: sin(PI*i/segments) * tw.
type Taper float64

func (tw Taper) At(i, segments int) float64 {
	return math.Sin(math.Pi*float64(i)/float64(segments)) * float64(tw)
}

// Step is everything the frame driver decides for one ribbon in one frame.
type Step struct {
	Dt    float64
	T0    float64
	Phase float64
	Width Width
}

// Stats reports on one regeneration.
type Stats struct {
	// Degenerate counts vertices whose offset axis came out zero or
	// non-finite. Those vertices collapse onto (or poison) the curve sample.
	Degenerate int
}

// Regenerate rewrites every vertex of m from samples of field taken over
// [s.T0, s.T0 + s.Dt*Segments].
//
// The offset axis is the normalized cross product of the tangent estimate
// and the difference of consecutive tangents. That difference is not a true
// normal and goes to zero when samples are collinear; nothing here corrects
// for it.
func Regenerate(m *Mesh, field curve.Field, s Step) Stats {
	var stats Stats

	dt, phase := s.Dt, s.Phase
	pp := field.Evaluate(s.T0-dt, phase)
	p1 := field.Evaluate(s.T0, phase)
	t1 := p1.Sub(pp)

	t := s.T0 - dt
	buf := m.positions
	half := m.Half()

	for i, i3 := 0, 0; i <= m.Segments; i, i3 = i+1, i3+3 {
		t += dt
		p := field.Evaluate(t, phase)
		tan := p.Sub(p1)
		n := tan.Sub(t1)
		b := tan.Cross(n).Normalize()
		if b.IsZero() || !b.IsFinite() {
			stats.Degenerate++
		}

		w := b.Scale(s.Width.At(i, m.Segments))
		p.Sub(w).Write(buf, i3)
		p.Add(w).Write(buf, i3+half)

		p1 = p
		t1 = tan
	}

	m.markChanged()
	return stats
}

// Sample returns the curve points Regenerate visits for s, one per vertex
// index. It lets callers check a buffer against its centre line.
func Sample(field curve.Field, segments int, s Step) []vectors.Vec3 {
	out := make([]vectors.Vec3, segments+1)
	t := s.T0 - s.Dt
	for i := range out {
		t += s.Dt
		out[i] = field.Evaluate(t, s.Phase)
	}
	return out
}
