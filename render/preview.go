// Package render is a small software stand-in for the GPU renderer: it
// projects ribbon strips through a pinhole camera and fills them into an
// image.
package render

import (
	"errors"
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/echoflaresat/ribbons/colors"
	"github.com/echoflaresat/ribbons/ribbon"
	"github.com/echoflaresat/ribbons/vectors"
)

var ErrNoCanvas = errors.New("canvas has no area")

type Theme struct {
	Background colors.Color4
	// Hue, Span, Saturation and Value configure the per-ribbon palette.
	Hue, Span  float64
	Saturation float64
	Value      float64
	Opacity    float64
}

func DefaultTheme() Theme {
	return Theme{
		Background: colors.New(0.03, 0.03, 0.05, 1),
		Hue:        0,
		Span:       300,
		Saturation: 0.8,
		Value:      1,
		Opacity:    0.85,
	}
}

// Preview rasterises ribbon meshes into an NRGBA image.
type Preview struct {
	Camera Camera
	Theme  Theme
	Follow *Follow

	img *image.NRGBA
}

func NewPreview(width, height int, camera Camera, theme Theme) *Preview {
	p := &Preview{Camera: camera, Theme: theme}
	p.Resize(width, height)
	return p
}

// Resize replaces the canvas. Sizes below one pixel leave no canvas and make
// Render fail.
func (p *Preview) Resize(width, height int) {
	if width < 1 || height < 1 {
		p.img = nil
		return
	}
	p.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Image is the last rendered frame.
func (p *Preview) Image() *image.NRGBA {
	return p.img
}

// Render clears the canvas and draws every mesh in its palette color.
func (p *Preview) Render(meshes []*ribbon.Mesh) error {
	if p.img == nil {
		return ErrNoCanvas
	}
	bounds := p.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if p.Follow != nil {
		if c, ok := Centroid(meshes); ok {
			p.Camera = p.Camera.LookAt(p.Follow.Update(c))
		}
	}

	draw.Draw(p.img, bounds, image.NewUniform(p.Theme.Background), image.Point{}, draw.Src)

	th := p.Theme
	palette := colors.Palette(len(meshes), th.Hue, th.Span, th.Saturation, th.Value)
	for k, m := range meshes {
		r := vector.NewRasterizer(w, h)
		if n := p.fillStrip(r, m, w, h); n == 0 {
			continue
		}
		col := palette[k].WithAlpha(th.Opacity)
		r.Draw(p.img, bounds, image.NewUniform(col), image.Point{})
	}
	return nil
}

// fillStrip adds one path per quad and returns how many were added. Quads
// are always wound the same way on screen so that overlapping parts of a
// twisted strip do not cancel out.
func (p *Preview) fillStrip(r *vector.Rasterizer, m *ribbon.Mesh, w, h int) int {
	var quad [4][2]float32
	count := 0
	for i := 0; i < m.Segments; i++ {
		corners := [4]vectors.Vec3{m.Front(i), m.Front(i + 1), m.Back(i + 1), m.Back(i)}
		ok := true
		for j, c := range corners {
			if !c.IsFinite() {
				ok = false
				break
			}
			x, y, visible := p.Camera.Project(c, w, h)
			if !visible {
				ok = false
				break
			}
			quad[j] = [2]float32{float32(x), float32(y)}
		}
		if !ok {
			continue
		}
		if signedArea(quad) < 0 {
			quad[1], quad[3] = quad[3], quad[1]
		}
		r.MoveTo(quad[0][0], quad[0][1])
		r.LineTo(quad[1][0], quad[1][1])
		r.LineTo(quad[2][0], quad[2][1])
		r.LineTo(quad[3][0], quad[3][1])
		r.ClosePath()
		count++
	}
	return count
}

func signedArea(q [4][2]float32) float32 {
	var a float32
	for i := range q {
		j := (i + 1) % len(q)
		a += q[i][0]*q[j][1] - q[j][0]*q[i][1]
	}
	return a / 2
}

// Centroid averages every finite vertex of meshes.
func Centroid(meshes []*ribbon.Mesh) (vectors.Vec3, bool) {
	sum := vectors.Zero()
	n := 0
	for _, m := range meshes {
		for i := 0; i < m.VertexCount(); i++ {
			v := vectors.Read(m.Positions(), 3*i)
			if !v.IsFinite() {
				continue
			}
			sum = sum.Add(v)
			n++
		}
	}
	if n == 0 {
		return vectors.Vec3{}, false
	}
	return sum.Scale(1 / float64(n)), true
}
