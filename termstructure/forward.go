package termstructure

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// forwardCurve holds instantaneous continuous forwards, flat backward between
// nodes: on (t[i-1], t[i]] the forward is f[i]. Beyond the last node the last
// forward is held.
type forwardCurve struct {
	times     []float64
	forwards  []float64
	primitive []float64 // integral of the forward from 0 to times[i]
	last      time.Time
}

func (f *forwardCurve) integral(t float64) float64 {
	n := len(f.times)
	i := sort.SearchFloat64s(f.times, t)
	switch {
	case i == 0:
		return f.forwards[0] * t
	case i >= n:
		return f.primitive[n-1] + f.forwards[n-1]*(t-f.times[n-1])
	default:
		return f.primitive[i-1] + f.forwards[i]*(t-f.times[i-1])
	}
}

func (f *forwardCurve) discount(t float64) float64 {
	return math.Exp(-f.integral(t))
}

func (f *forwardCurve) maxTime() float64 { return f.times[len(f.times)-1] }

func (f *forwardCurve) maxDate() time.Time { return f.last }

// NewForwardCurve builds a curve from short forward rates quoted under conv
// over ShortRateSpan at each date. The first date is the reference date.
func NewForwardCurve(dates []time.Time, forwards []float64, dayCount string, conv Convention) (*Curve, error) {
	times, err := nodeTimes(dates, dayCount)
	if err != nil {
		return nil, fmt.Errorf("NewForwardCurve: %w", err)
	}
	if err := checkValues("forwards", forwards, len(dates)); err != nil {
		return nil, fmt.Errorf("NewForwardCurve: %w", err)
	}

	f := &forwardCurve{
		times:     times,
		forwards:  make([]float64, len(forwards)),
		primitive: make([]float64, len(forwards)),
		last:      dates[len(dates)-1],
	}
	for i, r := range forwards {
		f.forwards[i] = conv.Convert(r, ShortRateSpan, ContinuousRate)
		if i > 0 {
			f.primitive[i] = f.primitive[i-1] + f.forwards[i]*(times[i]-times[i-1])
		}
	}
	return newCurve(dates[0], dayCount, f), nil
}
