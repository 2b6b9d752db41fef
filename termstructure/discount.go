package termstructure

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// discountCurve interpolates discount factors log-linearly (piecewise flat
// forwards) and extrapolates with the forward of the last segment.
type discountCurve struct {
	times []float64
	dfs   []float64
	last  time.Time
}

func (c *discountCurve) discount(t float64) float64 {
	i1, i2 := bracketOrBoundary(c.times, t)
	t1, t2 := c.times[i1], c.times[i2]
	df1, df2 := c.dfs[i1], c.dfs[i2]
	if t2 == t1 {
		return df1
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(t-t1))
}

func (c *discountCurve) maxTime() float64 { return c.times[len(c.times)-1] }

func (c *discountCurve) maxDate() time.Time { return c.last }

// NewDiscountCurve builds a curve from discount factors. The first date is the
// reference date and its discount factor must be 1.
func NewDiscountCurve(dates []time.Time, dfs []float64, dayCount string) (*Curve, error) {
	times, err := nodeTimes(dates, dayCount)
	if err != nil {
		return nil, fmt.Errorf("NewDiscountCurve: %w", err)
	}
	if err := checkValues("discount factors", dfs, len(dates)); err != nil {
		return nil, fmt.Errorf("NewDiscountCurve: %w", err)
	}
	if math.Abs(dfs[0]-1) > 1e-12 {
		return nil, fmt.Errorf("NewDiscountCurve: %w: discount factor at reference date is %.12f", ErrInvalidNodes, dfs[0])
	}
	for i, df := range dfs {
		if df <= 0 {
			return nil, fmt.Errorf("NewDiscountCurve: %w: non-positive discount factor at %s", ErrInvalidNodes, dates[i].Format("2006-01-02"))
		}
	}
	c := &discountCurve{times: times, dfs: append([]float64(nil), dfs...), last: dates[len(dates)-1]}
	return newCurve(dates[0], dayCount, c), nil
}

// bracketOrBoundary finds two adjacent nodes that bracket t.
// If t is outside the range, returns the nearest boundary pair.
func bracketOrBoundary(times []float64, t float64) (int, int) {
	idx := sort.SearchFloat64s(times, t)
	if idx <= 0 {
		return 0, 1
	}
	if idx >= len(times) {
		return len(times) - 2, len(times) - 1
	}
	return idx - 1, idx
}
