package render

import (
	"math"

	"github.com/echoflaresat/ribbons/vectors"
)

// Camera is a pinhole camera orbiting a target point.
type Camera struct {
	FOVDeg     float64
	TanHalfFOV float64
	Distance   float64
	Target     vectors.Vec3
	Position   vectors.Vec3
	Forward    vectors.Vec3
	Right      vectors.Vec3
	Up         vectors.Vec3
}

// NewCamera places a camera distance away from the origin, looking at it
// down -Z, then yaws it about Up and tilts it about Right (degrees).
func NewCamera(distance, fovDeg, tiltDeg, yawDeg float64) Camera {
	fovRad := fovDeg * math.Pi / 180.0
	tanHalf := math.Tan(fovRad / 2.0)

	fwd := vectors.Vec3{X: 0, Y: 0, Z: -1}
	right := vectors.Vec3{X: 1, Y: 0, Z: 0}
	up := vectors.Vec3{X: 0, Y: 1, Z: 0}

	if yawDeg != 0 {
		fwd, right, up = yawCamera(fwd, right, up, yawDeg)
	}
	if tiltDeg != 0 {
		fwd, right, up = tiltCamera(fwd, right, up, tiltDeg)
	}

	c := Camera{
		FOVDeg:     fovDeg,
		TanHalfFOV: tanHalf,
		Distance:   distance,
		Forward:    fwd,
		Right:      right,
		Up:         up,
	}
	return c.LookAt(vectors.Zero())
}

// LookAt keeps the orientation and distance and moves the camera so that it
// faces target.
func (c Camera) LookAt(target vectors.Vec3) Camera {
	c.Target = target
	c.Position = target.Sub(c.Forward.Scale(c.Distance))
	return c
}

// rotateVec applies Rodrigues’ rotation formula: rotate v around axis by (cosT, sinT).
func rotateVec(v, axis vectors.Vec3, cosT, sinT float64) vectors.Vec3 {
	// v*cos + (axis x v)*sin + axis*(axis·v)*(1-cos)
	return v.Scale(cosT).
		Add(axis.Cross(v).Scale(sinT)).
		Add(axis.Scale(axis.Dot(v) * (1.0 - cosT)))
}

// tiltCamera rotates forward/up around the Right axis by tiltDeg.
func tiltCamera(fwd, right, up vectors.Vec3, tiltDeg float64) (vectors.Vec3, vectors.Vec3, vectors.Vec3) {
	theta := tiltDeg * math.Pi / 180.0
	c, s := math.Cos(theta), math.Sin(theta)

	fwdNew := rotateVec(fwd, right, c, s).Normalize()
	upNew := rotateVec(up, right, c, s).Normalize()
	return fwdNew, right, upNew
}

// yawCamera rotates forward/right around the Up axis by yawDeg.
func yawCamera(fwd, right, up vectors.Vec3, yawDeg float64) (vectors.Vec3, vectors.Vec3, vectors.Vec3) {
	theta := yawDeg * math.Pi / 180.0
	c, s := math.Cos(theta), math.Sin(theta)

	fwdNew := rotateVec(fwd, up, c, s).Normalize()
	rightNew := rotateVec(right, up, c, s).Normalize()
	return fwdNew, rightNew, up
}

// Project maps p to pixel coordinates of a width×height image. It is the
// inverse of casting a ray through pixel (x, y); the horizontal extent is
// widened by the aspect ratio. ok is false for points behind the camera.
func (c Camera) Project(p vectors.Vec3, width, height int) (x, y float64, ok bool) {
	d := p.Sub(c.Position)
	z := d.Dot(c.Forward)
	if z <= 1e-9 {
		return 0, 0, false
	}

	w := float64(width)
	h := float64(height)
	aspect := w / h

	xNDC := d.Dot(c.Right) / (z * c.TanHalfFOV * aspect)
	yNDC := d.Dot(c.Up) / (z * c.TanHalfFOV)

	x = xNDC*((w-1)/2.0) + (w-1)/2.0
	y = -yNDC*((h-1)/2.0) + (h-1)/2.0
	return x, y, true
}
