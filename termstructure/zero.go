package termstructure

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/interp"
)

// zeroCurve interpolates continuously compounded zero rates linearly in time
// and extrapolates with the instantaneous forward at the last node.
type zeroCurve struct {
	times []float64
	rates []float64
	last  time.Time
	lin   interp.PiecewiseLinear
}

func (z *zeroCurve) zero(t float64) float64 {
	n := len(z.times)
	tMax := z.times[n-1]
	if t <= tMax {
		return z.lin.Predict(t)
	}
	rMax := z.rates[n-1]
	slope := (z.rates[n-1] - z.rates[n-2]) / (z.times[n-1] - z.times[n-2])
	instFwd := rMax + tMax*slope
	return (rMax*tMax + instFwd*(t-tMax)) / t
}

func (z *zeroCurve) discount(t float64) float64 {
	return math.Exp(-z.zero(t) * t)
}

func (z *zeroCurve) maxTime() float64 { return z.times[len(z.times)-1] }

func (z *zeroCurve) maxDate() time.Time { return z.last }

// NewZeroCurve builds a curve from zero rates quoted under conv at each date.
// The first date is the reference date. Rates are converted to continuous
// compounding before interpolation; the rate at the reference date is read
// over one day.
func NewZeroCurve(dates []time.Time, rates []float64, dayCount string, conv Convention) (*Curve, error) {
	times, err := nodeTimes(dates, dayCount)
	if err != nil {
		return nil, fmt.Errorf("NewZeroCurve: %w", err)
	}
	if err := checkValues("rates", rates, len(dates)); err != nil {
		return nil, fmt.Errorf("NewZeroCurve: %w", err)
	}

	cont := make([]float64, len(rates))
	for i, r := range rates {
		t := times[i]
		if t == 0 {
			t = ShortRateSpan
		}
		cont[i] = conv.Convert(r, t, ContinuousRate)
	}

	z := &zeroCurve{times: times, rates: cont, last: dates[len(dates)-1]}
	if err := z.lin.Fit(times, cont); err != nil {
		return nil, fmt.Errorf("NewZeroCurve: %w: %v", ErrInvalidNodes, err)
	}
	return newCurve(dates[0], dayCount, z), nil
}
