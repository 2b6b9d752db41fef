package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/longend/calendar"
	"github.com/meenmo/longend/utils"
)

// FixedRateBond pays a fixed coupon on a schedule generated backward from
// maturity, with a short first period when the tenor is not a whole number
// of coupon periods. Coupons accrue ACT/ACT ICMA; payment dates roll
// Following on the bond calendar.
type FixedRateBond struct {
	priced

	IssueDate    time.Time
	MaturityDate time.Time
	Coupon       float64
	Frequency    int
	FaceAmount   float64

	cashflows []Cashflow
}

const defaultFaceAmount = 100.0

// NewFixedRateBond builds a bond issued on issue, maturing tenor later on cal.
// coupon is a decimal rate; frequency is coupons per year.
func NewFixedRateBond(issue time.Time, tenor utils.Period, coupon float64, frequency int, cal calendar.CalendarID) (*FixedRateBond, error) {
	if frequency <= 0 || 12%frequency != 0 {
		return nil, fmt.Errorf("NewFixedRateBond: unsupported coupon frequency %d", frequency)
	}
	if tenor.Length <= 0 {
		return nil, fmt.Errorf("NewFixedRateBond: tenor %s must be positive", tenor)
	}

	b := &FixedRateBond{
		IssueDate:    issue,
		MaturityDate: calendar.Advance(cal, issue, tenor),
		Coupon:       coupon,
		Frequency:    frequency,
		FaceAmount:   defaultFaceAmount,
	}
	b.cashflows = b.generateCashflows(cal)
	return b, nil
}

// schedule returns unadjusted accrual dates from issue to maturity, rolled
// backward from maturity.
func (b *FixedRateBond) schedule() []time.Time {
	months := 12 / b.Frequency
	dates := []time.Time{b.MaturityDate}
	for k := 1; ; k++ {
		d := utils.AddMonth(b.MaturityDate, -k*months)
		if !d.After(b.IssueDate) {
			break
		}
		dates = append([]time.Time{d}, dates...)
	}
	return append([]time.Time{b.IssueDate}, dates...)
}

func (b *FixedRateBond) generateCashflows(cal calendar.CalendarID) []Cashflow {
	months := 12 / b.Frequency
	dates := b.schedule()
	periodFraction := 1.0 / float64(b.Frequency)

	cfs := make([]Cashflow, 0, len(dates))
	for i := 1; i < len(dates); i++ {
		start, end := dates[i-1], dates[i]
		accrual := periodFraction
		if i == 1 {
			notionalStart := utils.AddMonth(b.MaturityDate, -(len(dates)-1)*months)
			if !start.Equal(notionalStart) {
				accrual = periodFraction * utils.Days(start, end) / utils.Days(notionalStart, end)
			}
		}
		cf := Cashflow{
			Date:   calendar.AdjustFollowing(cal, end),
			Coupon: b.FaceAmount * b.Coupon * accrual,
		}
		if i == len(dates)-1 {
			cf.Principal = b.FaceAmount
		}
		cfs = append(cfs, cf)
	}
	return cfs
}

func (b *FixedRateBond) Cashflows() []Cashflow {
	return append([]Cashflow(nil), b.cashflows...)
}

func (b *FixedRateBond) NPV() (float64, error) {
	return b.npv(b.cashflows)
}
