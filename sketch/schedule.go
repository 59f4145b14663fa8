package sketch

import (
	"math"

	"github.com/echoflaresat/ribbons/animation"
	"github.com/echoflaresat/ribbons/ribbon"
)

// Schedule derives the sampling step of ribbon i for the current frame.
func (s *Sketch) Schedule(i int) ribbon.Step {
	tn := s.tuning
	frame := float64(s.clock.Frame())
	progress := s.clock.Progress()

	switch s.variant {
	case Dual:
		return ribbon.Step{
			Dt:    tn.Dt,
			T0:    frame*tn.T0Rate + tn.T0Offset,
			Width: ribbon.Constant(animation.Shrink(progress, tn.WidthCap)),
		}

	case Staggered:
		pr := animation.Stagger(progress, i, len(s.ribbons))
		seed := s.ribbons[i].Params.Phase.Seed[0]
		return ribbon.Step{
			Dt:    animation.CappedRamp(progress, tn.DtScale, tn.Dt),
			T0:    frame*tn.T0Rate + tn.T0Offset,
			Phase: frame*tn.PhaseRate + 2*math.Pi*seed,
			Width: ribbon.Taper(tn.TwScale * animation.Envelope(pr)),
		}
	}

	return ribbon.Step{
		Dt:    tn.StaticDt,
		T0:    tn.StaticT0,
		Width: ribbon.Constant(tn.StaticWidth),
	}
}
