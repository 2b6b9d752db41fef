package termstructure

import (
	"math"
	"time"
)

// zeroSpreaded adds a constant to every continuously compounded zero rate of
// an underlying curve. The underlying is queried without range checks; the
// spreaded curve applies its own.
type zeroSpreaded struct {
	base   *Curve
	spread float64
}

func (z zeroSpreaded) discount(t float64) float64 {
	return z.base.model.discount(t) * math.Exp(-z.spread*t)
}

func (z zeroSpreaded) maxTime() float64 { return z.base.model.maxTime() }

func (z zeroSpreaded) maxDate() time.Time { return z.base.MaxDate() }

// NewZeroSpreaded returns base shifted in parallel by spread in continuous
// zero-rate terms. base is referenced, not copied, and must outlive the
// result. The extrapolation flag is inherited from base.
func NewZeroSpreaded(base *Curve, spread float64) *Curve {
	c := newCurve(base.referenceDate, base.dayCount, zeroSpreaded{base: base, spread: spread})
	c.extrapolate = base.extrapolate
	return c
}
