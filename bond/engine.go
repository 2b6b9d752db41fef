package bond

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/longend/termstructure"
)

// PricingEngine values a set of cash flows.
type PricingEngine interface {
	NPV(cfs []Cashflow) (float64, error)
}

// DiscountingEngine discounts cash flows on whatever curve its handle points
// to at the time NPV is called. Flows on or before the curve reference date
// are ignored.
type DiscountingEngine struct {
	curve *termstructure.Handle
}

func NewDiscountingEngine(curve *termstructure.Handle) *DiscountingEngine {
	return &DiscountingEngine{curve: curve}
}

func (e *DiscountingEngine) NPV(cfs []Cashflow) (float64, error) {
	curve, err := e.curve.Curve()
	if err != nil {
		return 0, fmt.Errorf("DiscountingEngine.NPV: %w", err)
	}

	ref := curve.ReferenceDate()
	amounts := make([]float64, 0, len(cfs))
	dfs := make([]float64, 0, len(cfs))
	for _, cf := range cfs {
		if !cf.Date.After(ref) {
			continue
		}
		df, err := curve.DiscountDate(cf.Date)
		if err != nil {
			return 0, fmt.Errorf("DiscountingEngine.NPV: cash flow on %s: %w", cf.Date.Format("2006-01-02"), err)
		}
		amounts = append(amounts, cf.Amount())
		dfs = append(dfs, df)
	}
	if len(amounts) == 0 {
		return 0, nil
	}
	return floats.Dot(amounts, dfs), nil
}
