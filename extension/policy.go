// Package extension turns a market curve into a long-dated curve by sampling
// it on a calendar grid and replacing everything from a start offset on with
// one of five long-end rules.
package extension

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/longend/termstructure"
	"github.com/meenmo/longend/utils"
)

var (
	defaultStep    = utils.MonthsPeriod(1)
	defaultAnchor1 = utils.YearsPeriod(20)
	defaultAnchor2 = utils.YearsPeriod(30)
)

// Policy configures one extension. It is a value: building never mutates it
// and two builds against the same base produce identical curves.
type Policy struct {
	Kind RateKind
	// Start is where the rule takes over. Samples before it are read from
	// the base curve unchanged.
	Start utils.Period
	// End is the horizon of the built curve.
	End utils.Period
	// Step is the sampling interval.
	Step utils.Period
	// Convention is used both to read the base curve and to quote the samples.
	Convention termstructure.Convention
	Rule       Rule
}

// Sample is one node of an extended curve.
type Sample struct {
	Date     time.Time
	Time     float64
	Rate     float64
	Extended bool
}

func newPolicy(kind RateKind, start, end utils.Period, rule Rule) Policy {
	return Policy{
		Kind:       kind,
		Start:      start,
		End:        end,
		Step:       defaultStep,
		Convention: termstructure.AnnualRate,
		Rule:       rule,
	}
}

// Flat holds the rate at start for the rest of the curve.
func Flat(kind RateKind, start, end utils.Period) Policy {
	return newPolicy(kind, start, end, FlatRule{})
}

// Constant switches to ultimate at start.
func Constant(kind RateKind, ultimate float64, start, end utils.Period) Policy {
	return newPolicy(kind, start, end, ConstantRule{UltimateRate: ultimate})
}

// LinearlyGraded grades from the rate at start to ultimate at gradingEnd.
func LinearlyGraded(kind RateKind, ultimate float64, start, gradingEnd, end utils.Period) Policy {
	return newPolicy(kind, start, end, GradedRule{UltimateRate: ultimate, GradingEnd: gradingEnd})
}

// RollingAverage continues the curve with a trailing mean of window samples.
func RollingAverage(kind RateKind, window int, start, end utils.Period) Policy {
	return newPolicy(kind, start, end, RollingRule{Window: window})
}

// DualBlended holds the mean of the 20Y and 30Y rates from start on.
func DualBlended(kind RateKind, start, end utils.Period) Policy {
	return newPolicy(kind, start, end, BlendedRule{Anchor1: defaultAnchor1, Anchor2: defaultAnchor2})
}

// WithStep returns a copy of p sampling every step.
func (p Policy) WithStep(step utils.Period) Policy {
	p.Step = step
	return p
}

// WithConvention returns a copy of p using conv.
func (p Policy) WithConvention(conv termstructure.Convention) Policy {
	p.Convention = conv
	return p
}

// Name is METHOD_KIND, e.g. LINEARLY_GRADED_FORWARD.
func (p Policy) Name() string {
	if p.Rule == nil {
		return "UNSET_" + p.Kind.String()
	}
	return p.Rule.Method().String() + "_" + p.Kind.String()
}

// Validate reports malformed parameters as ErrInvalidConfiguration.
func (p Policy) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("Policy.Validate: %w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
	}
	if p.Rule == nil {
		return fail("no rule set")
	}
	if p.Kind != Zero && p.Kind != Forward {
		return fail("unsupported rate kind %s", p.Kind)
	}
	if p.Step.Length <= 0 {
		return fail("step %s must be positive", p.Step)
	}
	if p.Start.Length < 0 {
		return fail("start %s must not be negative", p.Start)
	}
	if p.End.Length <= 0 {
		return fail("end %s must be positive", p.End)
	}
	if p.End.ApproxYears() < p.Start.ApproxYears() {
		return fail("end %s before start %s", p.End, p.Start)
	}
	if err := p.Rule.validate(p); err != nil {
		return fail("%s: %v", p.Name(), err)
	}
	return nil
}

// sampler carries what the rules need from one build.
type sampler struct {
	base      termstructure.TermStructure
	kind      RateKind
	conv      termstructure.Convention
	ref       time.Time
	dayCount  string
	startTime float64
}

func (s *sampler) extract(t float64) (float64, error) {
	return ExtractRate(s.kind, s.base, t, s.conv)
}

func (s *sampler) timeAt(p utils.Period) float64 {
	return utils.YearFraction(s.ref, utils.Advance(s.ref, p), s.dayCount)
}

// Sample walks the grid from the base reference date to End and returns the
// extended rates. Extraction errors abort the walk.
func (p Policy) Sample(base termstructure.TermStructure) ([]Sample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &sampler{
		base:     base,
		kind:     p.Kind,
		conv:     p.Convention,
		ref:      base.ReferenceDate(),
		dayCount: base.DayCount(),
	}
	s.startTime = s.timeAt(p.Start)
	endDate := utils.Advance(s.ref, p.End)

	decide, err := p.Rule.prepare(s)
	if err != nil {
		return nil, fmt.Errorf("Policy.Sample: %s: %w", p.Name(), err)
	}

	var samples []Sample
	var emitted []float64
	for d := s.ref; !d.After(endDate); d = utils.Advance(d, p.Step) {
		t := utils.YearFraction(s.ref, d, s.dayCount)
		extended := t >= s.startTime

		var r float64
		if extended {
			r, err = decide(t, emitted)
		} else {
			r, err = s.extract(t)
		}
		if err != nil {
			return nil, fmt.Errorf("Policy.Sample: %s at %s: %w", p.Name(), d.Format("2006-01-02"), err)
		}

		emitted = append(emitted, r)
		samples = append(samples, Sample{Date: d, Time: t, Rate: r, Extended: extended})
	}
	return samples, nil
}

// BuildCurve samples base and assembles the samples into a curve of the
// policy's kind with the base day count. The base is only read.
func (p Policy) BuildCurve(base termstructure.TermStructure) (*termstructure.Curve, error) {
	samples, err := p.Sample(base)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(samples))
	rates := make([]float64, 0, len(samples))
	lastTime := math.Inf(-1)
	for _, smp := range samples {
		// Distinct dates can share a year fraction under 30/360.
		if smp.Time <= lastTime {
			log.Warn().Str("Policy", p.Name()).Time("Date", smp.Date).Float64("Time", smp.Time).Msg("duplicate sample date, keeping the first")
			continue
		}
		lastTime = smp.Time
		dates = append(dates, smp.Date)
		rates = append(rates, smp.Rate)
	}

	var curve *termstructure.Curve
	switch p.Kind {
	case Zero:
		curve, err = termstructure.NewZeroCurve(dates, rates, base.DayCount(), p.Convention)
	case Forward:
		curve, err = termstructure.NewForwardCurve(dates, rates, base.DayCount(), p.Convention)
	default:
		return nil, fmt.Errorf("Policy.BuildCurve: %w: unsupported rate kind %s", ErrInvalidConfiguration, p.Kind)
	}
	if err != nil {
		if len(dates) < 2 {
			return nil, fmt.Errorf("Policy.BuildCurve: %s: %w: %v", p.Name(), ErrInvalidConfiguration, err)
		}
		return nil, fmt.Errorf("Policy.BuildCurve: %s: %w", p.Name(), err)
	}

	log.Debug().Str("Policy", p.Name()).Int("Nodes", len(dates)).Time("MaxDate", curve.MaxDate()).Msg("built extended curve")
	return curve, nil
}
