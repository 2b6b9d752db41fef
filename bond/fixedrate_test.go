package bond_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/longend/bond"
	"github.com/meenmo/longend/calendar"
	"github.com/meenmo/longend/utils"
)

var issue = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

func TestFixedRateBond_RegularSchedule(t *testing.T) {
	t.Parallel()

	b, err := bond.NewFixedRateBond(issue, utils.YearsPeriod(5), 0.05, 2, calendar.USGovBond)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC), b.MaturityDate)

	cfs := b.Cashflows()
	require.Len(t, cfs, 10)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), cfs[0].Date)
	for i, cf := range cfs {
		assert.InDelta(t, 2.5, cf.Coupon, 1e-12, "flow %d", i)
		if i < len(cfs)-1 {
			assert.Zero(t, cf.Principal)
		}
	}
	assert.Equal(t, 100.0, cfs[9].Principal)
	assert.Equal(t, b.MaturityDate, cfs[9].Date)
	assert.InDelta(t, 102.5, cfs[9].Amount(), 1e-12)
}

func TestFixedRateBond_ShortFirstPeriod(t *testing.T) {
	t.Parallel()

	// 10Y from 2024-12-31 rolls to 2035-01-02, leaving a two-day first period.
	b, err := bond.NewFixedRateBond(issue, utils.YearsPeriod(10), 0.05, 2, calendar.USGovBond)
	require.NoError(t, err)
	require.Equal(t, time.Date(2035, 1, 2, 0, 0, 0, 0, time.UTC), b.MaturityDate)

	cfs := b.Cashflows()
	require.Len(t, cfs, 21)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), cfs[0].Date)
	assert.InDelta(t, 2.5*2.0/184.0, cfs[0].Coupon, 1e-12)
	assert.InDelta(t, 2.5, cfs[1].Coupon, 1e-12)
	assert.Equal(t, 100.0, cfs[20].Principal)
}

func TestFixedRateBond_PaymentDatesRollFollowing(t *testing.T) {
	t.Parallel()

	b, err := bond.NewFixedRateBond(issue, utils.YearsPeriod(30), 0.05, 2, calendar.USGovBond)
	require.NoError(t, err)

	for _, cf := range b.Cashflows() {
		assert.True(t, calendar.IsBusinessDay(calendar.USGovBond, cf.Date), cf.Date.Format("2006-01-02"))
	}
}

func TestNewFixedRateBond_Invalid(t *testing.T) {
	t.Parallel()

	_, err := bond.NewFixedRateBond(issue, utils.YearsPeriod(5), 0.05, 5, calendar.USGovBond)
	assert.Error(t, err)
	_, err = bond.NewFixedRateBond(issue, utils.YearsPeriod(0), 0.05, 2, calendar.USGovBond)
	assert.Error(t, err)
}
