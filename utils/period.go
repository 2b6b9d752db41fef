package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeUnit is the unit of a calendar Period.
type TimeUnit int

const (
	Day TimeUnit = iota
	Week
	Month
	Year
)

func (u TimeUnit) suffix() string {
	switch u {
	case Day:
		return "D"
	case Week:
		return "W"
	case Month:
		return "M"
	case Year:
		return "Y"
	default:
		return "?"
	}
}

// Period is a calendar offset such as 1M or 30Y. Unlike a year fraction it
// is resolved against a concrete date with Advance.
type Period struct {
	Length int
	Unit   TimeUnit
}

// YearsPeriod returns an n-year period.
func YearsPeriod(n int) Period { return Period{Length: n, Unit: Year} }

// MonthsPeriod returns an n-month period.
func MonthsPeriod(n int) Period { return Period{Length: n, Unit: Month} }

// DaysPeriod returns an n-day period.
func DaysPeriod(n int) Period { return Period{Length: n, Unit: Day} }

func (p Period) String() string {
	return strconv.Itoa(p.Length) + p.Unit.suffix()
}

// IsZero reports whether the period has zero length.
func (p Period) IsZero() bool {
	return p.Length == 0
}

// ApproxYears converts the period to years without a reference date.
// Only for ordering checks; use Advance and YearFraction for curve times.
func (p Period) ApproxYears() float64 {
	switch p.Unit {
	case Day:
		return float64(p.Length) / 365.0
	case Week:
		return float64(p.Length) * 7.0 / 365.0
	case Month:
		return float64(p.Length) / 12.0
	default:
		return float64(p.Length)
	}
}

// ParsePeriod converts tenor strings like "1W", "3M", "10Y", "5D".
func ParsePeriod(tenor string) (Period, error) {
	tenor = strings.TrimSpace(strings.ToUpper(tenor))
	if len(tenor) < 2 {
		return Period{}, fmt.Errorf("ParsePeriod: invalid tenor %q", tenor)
	}
	var unit TimeUnit
	switch tenor[len(tenor)-1] {
	case 'D':
		unit = Day
	case 'W':
		unit = Week
	case 'M':
		unit = Month
	case 'Y':
		unit = Year
	default:
		return Period{}, fmt.Errorf("ParsePeriod: unknown unit in %q", tenor)
	}
	n, err := strconv.Atoi(tenor[:len(tenor)-1])
	if err != nil {
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", tenor, err)
	}
	return Period{Length: n, Unit: unit}, nil
}

// Advance moves d forward by p. Month and year steps clamp to the end of
// the target month (Jan 31 + 1M = Feb 28/29).
func Advance(d time.Time, p Period) time.Time {
	switch p.Unit {
	case Day:
		return d.AddDate(0, 0, p.Length)
	case Week:
		return d.AddDate(0, 0, 7*p.Length)
	case Month:
		return AddMonth(d, p.Length)
	default:
		return AddMonth(d, 12*p.Length)
	}
}
