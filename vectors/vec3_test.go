package vectors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossIsOrthogonal(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 0.5, 2}
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
}

func TestNormalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	assert.InDelta(t, 1, n.Norm(), 1e-15)
	assert.InDelta(t, 0.6, n.X, 1e-15)

	// zero input stays zero rather than producing NaN
	assert.Equal(t, Vec3{}, Zero().Normalize())

	nan := Vec3{math.NaN(), 0, 0}.Normalize()
	assert.False(t, nan.IsFinite())
}

func TestReadWrite(t *testing.T) {
	buf := make([]float64, 6)
	Vec3{1, 2, 3}.Write(buf, 3)
	require.Equal(t, []float64{0, 0, 0, 1, 2, 3}, buf)
	assert.Equal(t, Vec3{1, 2, 3}, Read(buf, 3))
}

func TestComponentAndLerp(t *testing.T) {
	v := Vec3{7, 8, 9}
	assert.Equal(t, 7.0, v.Component(0))
	assert.Equal(t, 9.0, v.Component(2))
	assert.Panics(t, func() { v.Component(3) })

	mid := Vec3{0, 0, 0}.Lerp(Vec3{2, 4, -2}, 0.5)
	assert.Equal(t, Vec3{1, 2, -1}, mid)
	assert.InDelta(t, math.Sqrt(6), Distance(mid, Zero()), 1e-15)
}
