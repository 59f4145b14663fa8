// Package animation turns an integer frame counter into the normalized
// progress and eased quantities the ribbons are driven by.
package animation

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCycle = errors.New("total frames must be positive")

// Clock counts frames. The counter only ever grows by one per Tick; the
// cycle is applied when Progress is computed.
type Clock struct {
	TotalFrames uint64
	frame       uint64
}

// NewClock starts a clock at frame start.
func NewClock(totalFrames, start uint64) (*Clock, error) {
	if totalFrames == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCycle, totalFrames)
	}
	return &Clock{TotalFrames: totalFrames, frame: start}, nil
}

func (c *Clock) Frame() uint64 {
	return c.frame
}

// Tick advances the counter by exactly one frame and returns the new count.
func (c *Clock) Tick() uint64 {
	c.frame++
	return c.frame
}

// Progress is the position within the current cycle, in [0, 1).
func (c *Clock) Progress() float64 {
	return ProgressAt(c.frame, c.TotalFrames)
}

// ProgressAt computes (frame / total) mod 1 without going through a float
// division of the full counter, so it stays exact for very large frames.
func ProgressAt(frame, total uint64) float64 {
	return float64(frame%total) / float64(total)
}

// CappedRamp grows linearly with progress and saturates at ceiling.
func CappedRamp(progress, scale, ceiling float64) float64 {
	return math.Min(ceiling, progress*scale)
}

// Shrink falls from 0.5 to 0 over the cycle, never exceeding ceiling.
func Shrink(progress, ceiling float64) float64 {
	return math.Min(ceiling, 0.5-progress/2)
}

// Stagger delays the progress of ribbon i of count so that later ribbons
// start later. The result is clamped to [0, 1].
func Stagger(progress float64, i, count int) float64 {
	pr := progress*1.5 - 0.5*float64(i)/float64(count)
	return Clip(pr, 0, 1)
}

// Envelope rises and falls once as pr goes from 0 to 1.
func Envelope(pr float64) float64 {
	return math.Sin(math.Pi * pr)
}

// Clip clamps x into the inclusive range [min, max].
func Clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
