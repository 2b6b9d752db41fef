// Package termstructure provides the yield-curve contract consumed by the
// extension policies and the risk engine, plus the interpolated curve types
// that extended and shocked curves are assembled into.
package termstructure

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/longend/utils"
)

// ShortRateSpan is the accrual span used to turn a forward query into a
// short-rate proxy: one calendar day in ACT/365 terms.
const ShortRateSpan = 1.0 / 365.0

// zeroTimeProxy replaces t = 0 in rate queries, where the implied rate is 0/0.
const zeroTimeProxy = 1e-4

// TermStructure is a read-only view of a yield curve. Times are year
// fractions from ReferenceDate under DayCount.
type TermStructure interface {
	ReferenceDate() time.Time
	DayCount() string
	TimeFromReference(d time.Time) float64
	MaxTime() float64
	Discount(t float64) (float64, error)
	ZeroRate(t float64, conv Convention) (float64, error)
	ForwardRate(t0, t1 float64, conv Convention) (float64, error)
	EnableExtrapolation()
	AllowsExtrapolation() bool
}

// model is the curve-specific part of a Curve. Implementations may assume t
// has already been range checked.
type model interface {
	discount(t float64) float64
	maxTime() float64
}

// Curve implements TermStructure on top of a model.
type Curve struct {
	referenceDate time.Time
	dayCount      string
	extrapolate   bool
	model         model
}

var _ TermStructure = (*Curve)(nil)

func newCurve(ref time.Time, dayCount string, m model) *Curve {
	return &Curve{referenceDate: ref, dayCount: dayCount, model: m}
}

func (c *Curve) ReferenceDate() time.Time { return c.referenceDate }

func (c *Curve) DayCount() string { return c.dayCount }

func (c *Curve) MaxTime() float64 { return c.model.maxTime() }

// MaxDate is the last date covered without extrapolation. Curves with an
// unbounded domain return the zero time.
func (c *Curve) MaxDate() time.Time {
	if m, ok := c.model.(interface{ maxDate() time.Time }); ok {
		return m.maxDate()
	}
	return time.Time{}
}

func (c *Curve) TimeFromReference(d time.Time) float64 {
	return utils.YearFraction(c.referenceDate, d, c.dayCount)
}

func (c *Curve) EnableExtrapolation() { c.extrapolate = true }

func (c *Curve) AllowsExtrapolation() bool { return c.extrapolate }

func (c *Curve) checkRange(t float64) error {
	if t < 0 {
		return fmt.Errorf("%w: negative time %.6f", ErrExtrapolation, t)
	}
	if !c.extrapolate && t > c.model.maxTime()+1e-12 {
		return fmt.Errorf("%w: t=%.6f beyond max time %.6f", ErrExtrapolation, t, c.model.maxTime())
	}
	return nil
}

// Discount returns the discount factor at t.
func (c *Curve) Discount(t float64) (float64, error) {
	if err := c.checkRange(t); err != nil {
		return 0, err
	}
	return c.model.discount(t), nil
}

// DiscountDate is Discount at the year fraction of d.
func (c *Curve) DiscountDate(d time.Time) (float64, error) {
	return c.Discount(c.TimeFromReference(d))
}

// ZeroRate returns the zero rate at t expressed in conv.
func (c *Curve) ZeroRate(t float64, conv Convention) (float64, error) {
	if err := c.checkRange(t); err != nil {
		return 0, err
	}
	if t == 0 {
		t = zeroTimeProxy
	}
	return conv.ImpliedRate(1/c.model.discount(t), t), nil
}

// ForwardRate returns the rate implied between t0 and t1 expressed in conv.
func (c *Curve) ForwardRate(t0, t1 float64, conv Convention) (float64, error) {
	if t1 < t0 {
		return 0, fmt.Errorf("ForwardRate: t1 (%.6f) before t0 (%.6f)", t1, t0)
	}
	if t1 == t0 {
		t1 = t0 + zeroTimeProxy
	}
	if err := c.checkRange(t0); err != nil {
		return 0, err
	}
	if err := c.checkRange(t1); err != nil {
		return 0, err
	}
	return conv.ImpliedRate(c.model.discount(t0)/c.model.discount(t1), t1-t0), nil
}

// ForwardRateDates is ForwardRate between two dates.
func (c *Curve) ForwardRateDates(d0, d1 time.Time, conv Convention) (float64, error) {
	return c.ForwardRate(c.TimeFromReference(d0), c.TimeFromReference(d1), conv)
}

// nodeTimes converts strictly increasing dates to times from dates[0].
func nodeTimes(dates []time.Time, dayCount string) ([]float64, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 dates, got %d", ErrInvalidNodes, len(dates))
	}
	times := make([]float64, len(dates))
	for i, d := range dates {
		times[i] = utils.YearFraction(dates[0], d, dayCount)
		if i > 0 && !(times[i] > times[i-1]) {
			return nil, fmt.Errorf("%w: dates not strictly increasing at %s", ErrInvalidNodes, d.Format("2006-01-02"))
		}
	}
	return times, nil
}

func checkValues(name string, values []float64, n int) error {
	if len(values) != n {
		return fmt.Errorf("%w: %d dates but %d %s", ErrInvalidNodes, n, len(values), name)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidNodes, name, i)
		}
	}
	return nil
}
