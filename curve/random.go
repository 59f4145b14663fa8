package curve

import "github.com/echoflaresat/ribbons/vectors"

// Source yields uniform values in [0,1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Uniform draws from [min, max).
func Uniform(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// NewDual draws both frequencies from [min, max).
func NewDual(src Source, min, max float64) Params {
	return Params{
		Kind: DualFrequency,
		Dual: DualParams{
			Freq1: Uniform(src, min, max),
			Freq2: Uniform(src, min, max),
		},
	}
}

// NewPhase draws P1 and P2 componentwise from [0,1), scaled by p1Scale and
// p2Scale, followed by the seed pair.
func NewPhase(src Source, p1Scale, p2Scale float64) Params {
	unit := func() vectors.Vec3 {
		return vectors.Vec3{X: src.Float64(), Y: src.Float64(), Z: src.Float64()}
	}
	p1 := unit().Scale(p1Scale)
	p2 := unit().Scale(p2Scale)
	return Params{
		Kind: PhaseModulated,
		Phase: PhaseParams{
			P1:   p1,
			P2:   p2,
			Seed: [2]float64{src.Float64(), src.Float64()},
		},
	}
}
