package termstructure

import (
	"math"
	"time"
)

type flatForward struct {
	rate float64
	conv Convention
}

func (f flatForward) discount(t float64) float64 {
	return 1 / f.conv.CompoundFactor(f.rate, t)
}

func (flatForward) maxTime() float64 { return math.Inf(1) }

// NewFlatForward returns a curve whose zero rate is rate under conv at every
// maturity. Its domain is unbounded.
func NewFlatForward(ref time.Time, rate float64, dayCount string, conv Convention) *Curve {
	return newCurve(ref, dayCount, flatForward{rate: rate, conv: conv})
}
