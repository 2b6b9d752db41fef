package bond

import (
	"sort"
)

// Leg is a schedule of arbitrary dated cash flows, e.g. projected liability
// payments. Its NPV is the sum of the discounted flows.
type Leg struct {
	priced

	flows []Cashflow
}

// NewLeg copies flows and sorts them by date.
func NewLeg(flows []Cashflow) *Leg {
	l := &Leg{flows: append([]Cashflow(nil), flows...)}
	sort.SliceStable(l.flows, func(i, j int) bool {
		return l.flows[i].Date.Before(l.flows[j].Date)
	})
	return l
}

func (l *Leg) Cashflows() []Cashflow {
	return append([]Cashflow(nil), l.flows...)
}

func (l *Leg) Len() int {
	return len(l.flows)
}

func (l *Leg) NPV() (float64, error) {
	return l.npv(l.flows)
}
