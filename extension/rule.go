package extension

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/longend/utils"
)

// Method names the long-end rule of a policy.
type Method int

const (
	// FlatMethod holds the start-offset rate.
	FlatMethod Method = iota
	// ConstantMethod holds a configured ultimate rate.
	ConstantMethod
	// LinearlyGradedMethod grades from the start-offset rate to the ultimate rate.
	LinearlyGradedMethod
	// RollingAverageMethod averages its own trailing outputs.
	RollingAverageMethod
	// DualBlendedMethod holds the mean of two anchor rates.
	DualBlendedMethod
)

func (m Method) String() string {
	switch m {
	case FlatMethod:
		return "FLAT"
	case ConstantMethod:
		return "CONSTANT"
	case LinearlyGradedMethod:
		return "LINEARLY_GRADED"
	case RollingAverageMethod:
		return "ROLLING_AVERAGE"
	case DualBlendedMethod:
		return "DUAL_BLENDED"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Rule decides the rate at or after the start offset. The set of rules is
// closed: FlatRule, ConstantRule, GradedRule, RollingRule and BlendedRule.
type Rule interface {
	Method() Method
	validate(p Policy) error
	prepare(s *sampler) (decideFunc, error)
}

// decideFunc returns the rate at t >= start given every rate emitted so far,
// in sampling order.
type decideFunc func(t float64, emitted []float64) (float64, error)

// FlatRule freezes the rate observed at the start offset.
type FlatRule struct{}

func (FlatRule) Method() Method { return FlatMethod }

func (FlatRule) validate(Policy) error { return nil }

func (FlatRule) prepare(s *sampler) (decideFunc, error) {
	rStart, err := s.extract(s.startTime)
	if err != nil {
		return nil, err
	}
	return func(float64, []float64) (float64, error) { return rStart, nil }, nil
}

// ConstantRule jumps to UltimateRate at the start offset.
type ConstantRule struct {
	UltimateRate float64
}

func (ConstantRule) Method() Method { return ConstantMethod }

func (r ConstantRule) validate(Policy) error {
	return checkFinite("ultimate rate", r.UltimateRate)
}

func (r ConstantRule) prepare(*sampler) (decideFunc, error) {
	return func(float64, []float64) (float64, error) { return r.UltimateRate, nil }, nil
}

// GradedRule moves linearly from the start-offset rate to UltimateRate
// between the start offset and GradingEnd, and holds UltimateRate after.
type GradedRule struct {
	UltimateRate float64
	GradingEnd   utils.Period
}

func (GradedRule) Method() Method { return LinearlyGradedMethod }

func (r GradedRule) validate(p Policy) error {
	if err := checkFinite("ultimate rate", r.UltimateRate); err != nil {
		return err
	}
	if r.GradingEnd.ApproxYears() <= p.Start.ApproxYears() {
		return fmt.Errorf("grading end %s must be after start %s", r.GradingEnd, p.Start)
	}
	return nil
}

func (r GradedRule) prepare(s *sampler) (decideFunc, error) {
	rStart, err := s.extract(s.startTime)
	if err != nil {
		return nil, err
	}
	gradingEnd := s.timeAt(r.GradingEnd)
	span := gradingEnd - s.startTime
	if span <= 0 {
		return nil, fmt.Errorf("%w: grading end time %.6f not after start time %.6f", ErrInvalidConfiguration, gradingEnd, s.startTime)
	}
	return func(t float64, _ []float64) (float64, error) {
		if t > gradingEnd {
			return r.UltimateRate, nil
		}
		w := math.Min(math.Max((t-s.startTime)/span, 0), 1)
		return rStart*(1-w) + r.UltimateRate*w, nil
	}, nil
}

// RollingRule emits the rate at the start offset for the first extended
// sample, then the mean of the last Window emitted rates. Emitted rates include the observed region
// and earlier outputs of the rule itself, so each output feeds the next.
type RollingRule struct {
	Window int
}

func (RollingRule) Method() Method { return RollingAverageMethod }

func (r RollingRule) validate(Policy) error {
	if r.Window < 1 {
		return fmt.Errorf("window size %d must be at least 1", r.Window)
	}
	return nil
}

func (r RollingRule) prepare(s *sampler) (decideFunc, error) {
	rStart, err := s.extract(s.startTime)
	if err != nil {
		return nil, err
	}
	first := true
	return func(_ float64, emitted []float64) (float64, error) {
		if first || len(emitted) == 0 {
			first = false
			return rStart, nil
		}
		tail := emitted
		if len(tail) > r.Window {
			tail = tail[len(tail)-r.Window:]
		}
		return stat.Mean(tail, nil), nil
	}, nil
}

// BlendedRule holds the mean of the rates at two anchor tenors, read once
// from the base curve.
type BlendedRule struct {
	Anchor1 utils.Period
	Anchor2 utils.Period
}

func (BlendedRule) Method() Method { return DualBlendedMethod }

func (r BlendedRule) validate(Policy) error {
	if r.Anchor1.Length <= 0 || r.Anchor2.Length <= 0 {
		return fmt.Errorf("anchors %s and %s must be positive", r.Anchor1, r.Anchor2)
	}
	return nil
}

func (r BlendedRule) prepare(s *sampler) (decideFunc, error) {
	r1, err := s.extract(s.timeAt(r.Anchor1))
	if err != nil {
		return nil, err
	}
	r2, err := s.extract(s.timeAt(r.Anchor2))
	if err != nil {
		return nil, err
	}
	ultimate := (r1 + r2) / 2.0
	return func(float64, []float64) (float64, error) { return ultimate, nil }, nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is not finite", name)
	}
	return nil
}
