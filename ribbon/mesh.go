// Package ribbon holds the strip mesh swept along a curve and the routine
// that rewrites it every frame.
package ribbon

import (
	"errors"
	"fmt"

	"github.com/echoflaresat/ribbons/vectors"
)

var ErrInvalidSegments = errors.New("segment count must be at least 1")

// Mesh is a single-row plane strip: Segments+1 vertices on the front edge
// followed by Segments+1 vertices on the back edge, three floats each.
// The buffer length never changes after NewMesh.
type Mesh struct {
	Segments int

	positions   []float64
	needsUpdate bool
	version     uint64
}

func NewMesh(segments int) (*Mesh, error) {
	if segments < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegments, segments)
	}
	return &Mesh{
		Segments:  segments,
		positions: make([]float64, 6*(segments+1)),
	}, nil
}

// Positions exposes the vertex buffer for upload. Callers must not write to it.
func (m *Mesh) Positions() []float64 {
	return m.positions
}

// Half is the offset of the back row in Positions.
func (m *Mesh) Half() int {
	return 3 * (m.Segments + 1)
}

func (m *Mesh) VertexCount() int {
	return 2 * (m.Segments + 1)
}

func (m *Mesh) Front(i int) vectors.Vec3 {
	return vectors.Read(m.positions, 3*i)
}

func (m *Mesh) Back(i int) vectors.Vec3 {
	return vectors.Read(m.positions, 3*i+m.Half())
}

// Center is the midpoint of the i-th front/back pair, i.e. the curve sample.
func (m *Mesh) Center(i int) vectors.Vec3 {
	return m.Front(i).Lerp(m.Back(i), 0.5)
}

// NeedsUpdate reports whether the contents changed since MarkUploaded.
func (m *Mesh) NeedsUpdate() bool {
	return m.needsUpdate
}

func (m *Mesh) MarkUploaded() {
	m.needsUpdate = false
}

// Version counts regenerations.
func (m *Mesh) Version() uint64 {
	return m.version
}

func (m *Mesh) markChanged() {
	m.needsUpdate = true
	m.version++
}

// Clone returns a detached copy carrying the same positions and version.
// The copy is safe to read while m is being regenerated.
func (m *Mesh) Clone() *Mesh {
	positions := make([]float64, len(m.positions))
	copy(positions, m.positions)
	return &Mesh{
		Segments:    m.Segments,
		positions:   positions,
		needsUpdate: m.needsUpdate,
		version:     m.version,
	}
}

// Indices returns the triangle list for the strip. Quad i spans front
// vertices i, i+1 and back vertices i, i+1.
func (m *Mesh) Indices() []uint32 {
	return StripIndices(m.Segments)
}

func StripIndices(segments int) []uint32 {
	row := uint32(segments + 1)
	out := make([]uint32, 0, 6*segments)
	for i := uint32(0); i < uint32(segments); i++ {
		a := i
		b := i + row
		c := i + 1 + row
		d := i + 1
		out = append(out, a, b, d, b, c, d)
	}
	return out
}
