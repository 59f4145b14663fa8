package render

import (
	"github.com/charmbracelet/harmonica"

	"github.com/echoflaresat/ribbons/vectors"
)

// Follow eases a point toward a moving target with a damped spring, one
// step per rendered frame.
type Follow struct {
	spring harmonica.Spring
	pos    vectors.Vec3
	vel    vectors.Vec3
	primed bool
}

func NewFollow(fps int, frequency, damping float64) *Follow {
	return &Follow{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update advances the spring by one frame. The first call jumps straight to
// target.
func (f *Follow) Update(target vectors.Vec3) vectors.Vec3 {
	if !f.primed {
		f.pos = target
		f.primed = true
		return f.pos
	}
	f.pos.X, f.vel.X = f.spring.Update(f.pos.X, f.vel.X, target.X)
	f.pos.Y, f.vel.Y = f.spring.Update(f.pos.Y, f.vel.Y, target.Y)
	f.pos.Z, f.vel.Z = f.spring.Update(f.pos.Z, f.vel.Z, target.Z)
	return f.pos
}
