package bond

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNoPricingEngine is returned by NPV before SetPricingEngine.
	ErrNoPricingEngine = errors.New("no pricing engine set")
)

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are in currency units (e.g., EUR), not price-per-100.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

func (c Cashflow) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Date", c.Date).Float64("Coupon", c.Coupon).Float64("Principal", c.Principal)
}

// Instrument is anything valued from its cash flows by a pricing engine.
type Instrument interface {
	Cashflows() []Cashflow
	SetPricingEngine(engine PricingEngine)
	NPV() (float64, error)
}

// priced is embedded by instruments to hold their engine.
type priced struct {
	engine PricingEngine
}

func (p *priced) SetPricingEngine(engine PricingEngine) {
	p.engine = engine
}

func (p *priced) npv(cfs []Cashflow) (float64, error) {
	if p.engine == nil {
		return 0, ErrNoPricingEngine
	}
	return p.engine.NPV(cfs)
}
