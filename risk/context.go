// Package risk selects one extended curve as active and measures how linked
// instruments respond to parallel shifts of it.
package risk

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/longend/bond"
	"github.com/meenmo/longend/catalog"
	"github.com/meenmo/longend/termstructure"
)

// DefaultSpread is the shock size: one basis point.
const DefaultSpread = 0.0001

// Context holds the active curve and its shocked variants. Instruments
// linked to a context price through its handle, so SetActive retargets all
// of them at once. A Context must not be shared between goroutines.
//
// Curves are borrowed from the cache; the cache must outlive the context.
type Context struct {
	cache  *catalog.Cache
	spread float64

	name   string
	handle *termstructure.Handle
	up     *termstructure.Curve
	down   *termstructure.Curve
	engine *bond.DiscountingEngine
}

// NewContext returns a context with no active curve. A non-positive spread
// selects DefaultSpread.
func NewContext(cache *catalog.Cache, spread float64) *Context {
	if spread <= 0 {
		spread = DefaultSpread
	}
	h := termstructure.NewHandle(nil)
	return &Context{
		cache:  cache,
		spread: spread,
		handle: h,
		engine: bond.NewDiscountingEngine(h),
	}
}

// SetActive makes the named curve active and rebuilds the shocked curves
// from it. On error the previous state is kept.
func (c *Context) SetActive(name string) error {
	curve, err := c.cache.Get(name)
	if err != nil {
		return fmt.Errorf("Context.SetActive: %w", err)
	}

	c.name = name
	c.handle.LinkTo(curve)
	c.up = termstructure.NewZeroSpreaded(curve, c.spread)
	c.down = termstructure.NewZeroSpreaded(curve, -c.spread)

	log.Debug().Str("Curve", name).Float64("Spread", c.spread).Msg("active curve set")
	return nil
}

// Link prices inst through the context's handle from now on.
func (c *Context) Link(inst bond.Instrument) {
	inst.SetPricingEngine(c.engine)
}

// ActiveName returns the active curve name, or "" before SetActive.
func (c *Context) ActiveName() string {
	return c.name
}

// ActiveCurve returns the curve the handle currently points to.
func (c *Context) ActiveCurve() (*termstructure.Curve, error) {
	if c.name == "" {
		return nil, ErrNoActiveCurve
	}
	return c.handle.Curve()
}

// Handle exposes the relinkable handle shared by linked instruments.
func (c *Context) Handle() *termstructure.Handle {
	return c.handle
}

// Shocked returns the up and down curves of the active curve.
func (c *Context) Shocked() (up, down *termstructure.Curve, err error) {
	if c.name == "" {
		return nil, nil, ErrNoActiveCurve
	}
	return c.up, c.down, nil
}

// Spread returns the shock size.
func (c *Context) Spread() float64 {
	return c.spread
}
