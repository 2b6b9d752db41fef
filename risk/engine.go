package risk

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/meenmo/longend/bond"
)

// Sensitivities are the results of one set of revaluations.
type Sensitivities struct {
	NPV       float64
	Duration  float64
	Convexity float64
}

func (s Sensitivities) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("NPV", s.NPV).Float64("Duration", s.Duration).Float64("Convexity", s.Convexity)
}

// Engine values instruments linked to a Context.
type Engine struct {
	ctx *Context
}

func NewEngine(ctx *Context) *Engine {
	return &Engine{ctx: ctx}
}

// NPV values inst on the active curve.
func (e *Engine) NPV(inst bond.Instrument) (float64, error) {
	if e.ctx.name == "" {
		return 0, fmt.Errorf("Engine.NPV: %w", ErrNoActiveCurve)
	}
	npv, err := inst.NPV()
	if err != nil {
		return 0, fmt.Errorf("Engine.NPV: %w", err)
	}
	return npv, nil
}

// Duration is -(up-down)/(2*base*h) for a parallel shift h.
func (e *Engine) Duration(inst bond.Instrument) (float64, error) {
	s, err := e.Measure(inst)
	if err != nil {
		return 0, fmt.Errorf("Engine.Duration: %w", err)
	}
	return s.Duration, nil
}

// Convexity is (up+down-2*base)/(base*h^2) for a parallel shift h.
func (e *Engine) Convexity(inst bond.Instrument) (float64, error) {
	s, err := e.Measure(inst)
	if err != nil {
		return 0, fmt.Errorf("Engine.Convexity: %w", err)
	}
	return s.Convexity, nil
}

// Measure revalues inst on the base, up and down curves once and returns
// NPV, duration and convexity.
func (e *Engine) Measure(inst bond.Instrument) (Sensitivities, error) {
	base, up, down, err := e.revalue(inst)
	if err != nil {
		return Sensitivities{}, fmt.Errorf("Engine.Measure: %w", err)
	}
	if base == 0 {
		return Sensitivities{}, fmt.Errorf("Engine.Measure: %w", ErrDegenerateValuation)
	}

	h := e.ctx.spread
	s := Sensitivities{
		NPV:       base,
		Duration:  -(up - down) / (2.0 * base * h),
		Convexity: (up + down - 2.0*base) / (base * h * h),
	}
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) || math.IsNaN(s.Convexity) || math.IsInf(s.Convexity, 0) {
		return Sensitivities{}, fmt.Errorf("Engine.Measure: %w: non-finite sensitivities for NPV %g", ErrDegenerateValuation, base)
	}
	return s, nil
}

// revalue prices inst with the handle on base, up and down in turn. The
// handle is pointed back at its original target on every return path.
func (e *Engine) revalue(inst bond.Instrument) (base, up, down float64, err error) {
	c := e.ctx
	if c.name == "" {
		return 0, 0, 0, ErrNoActiveCurve
	}

	original := c.handle.Current()
	defer c.handle.LinkTo(original)

	if base, err = inst.NPV(); err != nil {
		return 0, 0, 0, fmt.Errorf("base revaluation: %w", err)
	}
	c.handle.LinkTo(c.up)
	if up, err = inst.NPV(); err != nil {
		return 0, 0, 0, fmt.Errorf("up revaluation: %w", err)
	}
	c.handle.LinkTo(c.down)
	if down, err = inst.NPV(); err != nil {
		return 0, 0, 0, fmt.Errorf("down revaluation: %w", err)
	}
	return base, up, down, nil
}
