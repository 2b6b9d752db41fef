package termstructure

import (
	"fmt"
	"math"
	"strings"
)

// Compounding selects how a rate accrues over time.
type Compounding int

const (
	Simple Compounding = iota
	Compounded
	Continuous
)

// Frequency is the number of compounding periods per year.
type Frequency int

const (
	Annual     Frequency = 1
	Semiannual Frequency = 2
	Quarterly  Frequency = 4
	Monthly    Frequency = 12
)

// Convention pairs a compounding rule with its frequency. Frequency is only
// read for Compounded and defaults to Annual.
type Convention struct {
	Compounding Compounding
	Frequency   Frequency
}

var (
	ContinuousRate = Convention{Compounding: Continuous}
	AnnualRate     = Convention{Compounding: Compounded, Frequency: Annual}
	SimpleRate     = Convention{Compounding: Simple}
)

func (c Convention) freq() float64 {
	if c.Frequency <= 0 {
		return 1
	}
	return float64(c.Frequency)
}

// CompoundFactor returns the growth of one unit at rate r over t years.
func (c Convention) CompoundFactor(r, t float64) float64 {
	switch c.Compounding {
	case Simple:
		return 1 + r*t
	case Continuous:
		return math.Exp(r * t)
	default:
		f := c.freq()
		return math.Pow(1+r/f, f*t)
	}
}

// ImpliedRate inverts CompoundFactor. t must be positive.
func (c Convention) ImpliedRate(factor, t float64) float64 {
	switch c.Compounding {
	case Simple:
		return (factor - 1) / t
	case Continuous:
		return math.Log(factor) / t
	default:
		f := c.freq()
		return (math.Pow(factor, 1/(f*t)) - 1) * f
	}
}

// Convert re-expresses r, quoted under c over t years, in convention to.
func (c Convention) Convert(r, t float64, to Convention) float64 {
	if c == to {
		return r
	}
	return to.ImpliedRate(c.CompoundFactor(r, t), t)
}

func (c Convention) String() string {
	switch c.Compounding {
	case Simple:
		return "simple"
	case Continuous:
		return "continuous"
	default:
		switch c.Frequency {
		case Semiannual:
			return "semiannual"
		case Quarterly:
			return "quarterly"
		case Monthly:
			return "monthly"
		default:
			return "annual"
		}
	}
}

// ParseConvention accepts the names produced by Convention.String.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return SimpleRate, nil
	case "continuous":
		return ContinuousRate, nil
	case "", "annual":
		return AnnualRate, nil
	case "semiannual":
		return Convention{Compounding: Compounded, Frequency: Semiannual}, nil
	case "quarterly":
		return Convention{Compounding: Compounded, Frequency: Quarterly}, nil
	case "monthly":
		return Convention{Compounding: Compounded, Frequency: Monthly}, nil
	default:
		return Convention{}, fmt.Errorf("ParseConvention: unknown convention %q", s)
	}
}
