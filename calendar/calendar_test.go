package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/longend/calendar"
	"github.com/meenmo/longend/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUSGovBondHolidays(t *testing.T) {
	t.Parallel()

	holidays := map[string]time.Time{
		"new year":              date(2025, 1, 1),
		"martin luther king":    date(2025, 1, 20),
		"good friday":           date(2025, 4, 18),
		"memorial day":          date(2025, 5, 26),
		"juneteenth":            date(2025, 6, 19),
		"independence observed": date(2026, 7, 3),
		"labor day":             date(2025, 9, 1),
		"thanksgiving":          date(2025, 11, 27),
		"christmas":             date(2025, 12, 25),
		"christmas observed":    date(2027, 12, 24),
		"new year observed":     date(2045, 1, 2),
	}
	for name, d := range holidays {
		assert.False(t, calendar.IsBusinessDay(calendar.USGovBond, d), name)
	}

	assert.True(t, calendar.IsBusinessDay(calendar.Weekends, date(2025, 12, 25)))
	assert.True(t, calendar.IsBusinessDay(calendar.USGovBond, date(2024, 12, 31)))
	assert.True(t, calendar.IsBusinessDay(calendar.USGovBond, date(2021, 6, 18)), "juneteenth before 2022")
	assert.False(t, calendar.IsBusinessDay(calendar.USGovBond, date(2025, 1, 4)), "saturday")
}

func TestAdvance_BondMaturities(t *testing.T) {
	t.Parallel()

	issue := date(2024, 12, 31)
	tests := []struct {
		tenor int
		want  time.Time
	}{
		{5, date(2029, 12, 31)},
		{10, date(2035, 1, 2)},
		{20, date(2045, 1, 3)},
		{30, date(2054, 12, 31)},
	}
	for _, tt := range tests {
		got := calendar.Advance(calendar.USGovBond, issue, utils.YearsPeriod(tt.tenor))
		assert.Equal(t, tt.want, got, "%dY", tt.tenor)
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	// Saturday 2025-05-31 rolls back into May under modified following.
	assert.Equal(t, date(2025, 5, 30), calendar.Adjust(calendar.USGovBond, date(2025, 5, 31)))
	assert.Equal(t, date(2025, 6, 2), calendar.AdjustFollowing(calendar.USGovBond, date(2025, 5, 31)))
	assert.Equal(t, date(2025, 1, 2), calendar.AddBusinessDays(calendar.USGovBond, date(2024, 12, 31), 1))
	assert.True(t, calendar.IsEndOfMonth(calendar.USGovBond, date(2025, 5, 30)))
}
