package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/echoflaresat/ribbons/curve"
	"github.com/echoflaresat/ribbons/ribbon"
	"github.com/echoflaresat/ribbons/vectors"
)

func TestProjectCentresTarget(t *testing.T) {
	cases := []struct {
		name      string
		tilt, yaw float64
	}{
		{"front", 0, 0},
		{"side", 0, 90},
		{"above", -60, 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(5, 60, c.tilt, c.yaw)
			assert.InDelta(t, 5, cam.Position.Norm(), 1e-12)

			x, y, ok := cam.Project(vectors.Zero(), 101, 101)
			require.True(t, ok)
			assert.InDelta(t, 50, x, 1e-9)
			assert.InDelta(t, 50, y, 1e-9)

			_, _, ok = cam.Project(cam.Position.Scale(2), 101, 101)
			assert.False(t, ok)
		})
	}
}

func TestProjectOrientation(t *testing.T) {
	cam := NewCamera(5, 60, 0, 0)
	x, _, _ := cam.Project(vectors.Vec3{X: 1}, 101, 101)
	_, y, _ := cam.Project(vectors.Vec3{Y: 1}, 101, 101)
	assert.Greater(t, x, 50.0)
	assert.Less(t, y, 50.0)
	assert.InDelta(t, 50+50/(5*math.Tan(math.Pi/6)), x, 1e-9)

	moved := cam.LookAt(vectors.Vec3{X: 1})
	x, _, _ = moved.Project(vectors.Vec3{X: 1}, 101, 101)
	assert.InDelta(t, 50, x, 1e-9)
}

func ringMesh(t *testing.T) *ribbon.Mesh {
	t.Helper()
	ring := curve.FieldFunc(func(tt, _ float64) vectors.Vec3 {
		return vectors.Vec3{X: math.Cos(tt), Y: 0, Z: math.Sin(tt)}
	})
	m, err := ribbon.NewMesh(64)
	require.NoError(t, err)
	ribbon.Regenerate(m, ring, ribbon.Step{Dt: 2 * math.Pi / 64, T0: 0, Width: ribbon.Constant(0.3)})
	return m
}

func TestRenderFillsStrip(t *testing.T) {
	p := NewPreview(64, 64, NewCamera(4, 60, 0, 0), DefaultTheme())
	require.NoError(t, p.Render([]*ribbon.Mesh{ringMesh(t)}))

	img := p.Image()
	bg := img.NRGBAAt(0, 0)
	assert.NotEqual(t, bg, img.NRGBAAt(32, 32))
	assert.Equal(t, bg, img.NRGBAAt(63, 0))
}

func TestRenderSkipsUnprojectable(t *testing.T) {
	p := NewPreview(32, 32, NewCamera(4, 60, 0, 0), DefaultTheme())
	line := curve.FieldFunc(func(tt, _ float64) vectors.Vec3 {
		return vectors.Vec3{X: math.NaN()}
	})
	m, _ := ribbon.NewMesh(4)
	ribbon.Regenerate(m, line, ribbon.Step{Dt: 0.1, Width: ribbon.Constant(1)})

	require.NoError(t, p.Render([]*ribbon.Mesh{m}))
	img := p.Image()
	assert.Equal(t, img.NRGBAAt(0, 0), img.NRGBAAt(16, 16))
}

func TestResize(t *testing.T) {
	p := NewPreview(16, 16, NewCamera(4, 60, 0, 0), DefaultTheme())
	p.Resize(40, 20)
	assert.Equal(t, 40, p.Image().Bounds().Dx())
	assert.Equal(t, 20, p.Image().Bounds().Dy())

	p.Resize(0, 20)
	assert.ErrorIs(t, p.Render(nil), ErrNoCanvas)
}

func TestFollowSettles(t *testing.T) {
	f := NewFollow(60, 6, 1)
	start := vectors.Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, start, f.Update(start))

	target := vectors.Vec3{X: -1}
	var got vectors.Vec3
	for i := 0; i < 300; i++ {
		got = f.Update(target)
	}
	assert.InDelta(t, 0, vectors.Distance(got, target), 1e-3)
}

func TestRenderWithFollow(t *testing.T) {
	p := NewPreview(32, 32, NewCamera(4, 60, 0, 0), DefaultTheme())
	p.Follow = NewFollow(30, 4, 1)
	require.NoError(t, p.Render([]*ribbon.Mesh{ringMesh(t)}))

	c, ok := Centroid([]*ribbon.Mesh{ringMesh(t)})
	require.True(t, ok)
	assert.Equal(t, c, p.Camera.Target)

	_, ok = Centroid(nil)
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	p := NewPreview(24, 12, NewCamera(4, 60, 0, 0), DefaultTheme())
	require.NoError(t, p.Render([]*ribbon.Mesh{ringMesh(t)}))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p.Image(), "png"))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.Image().Bounds(), img.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, p.Image(), "TIFF"))
	img, err = tiff.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.Image().Bounds(), img.Bounds())

	assert.ErrorIs(t, Encode(&buf, p.Image(), "gif"), ErrUnsupportedFormat)

	path := filepath.Join(t.TempDir(), "frame"+Extension("png"))
	require.NoError(t, WriteFile(path, p.Image(), "png"))
	_, err = os.Stat(path)
	assert.NoError(t, err)

	assert.Equal(t, ".tif", Extension("tiff"))
	assert.ErrorIs(t, WriteFile(filepath.Join(t.TempDir(), "x.gif"), p.Image(), "gif"), ErrUnsupportedFormat)
}
