package calendar

import "time"

func isUSGovBondHoliday(t time.Time) bool {
	y, m, d := t.Date()
	w := t.Weekday()

	switch m {
	case time.January:
		// New Year's Day, Monday if Sunday
		if d == 1 || (d == 2 && w == time.Monday) {
			return true
		}
		// Martin Luther King's birthday, third Monday
		if y >= 1983 && w == time.Monday && d >= 15 && d <= 21 {
			return true
		}
	case time.February:
		// Washington's birthday, third Monday
		if w == time.Monday && d >= 15 && d <= 21 {
			return true
		}
	case time.May:
		// Memorial Day, last Monday
		if w == time.Monday && d+7 > daysInMonth(y, m) {
			return true
		}
	case time.June:
		if y >= 2022 && isObserved(t, 19) {
			return true
		}
	case time.July:
		if isObserved(t, 4) {
			return true
		}
	case time.September:
		// Labor Day, first Monday
		if w == time.Monday && d <= 7 {
			return true
		}
	case time.October:
		// Columbus Day, second Monday
		if w == time.Monday && d >= 8 && d <= 14 {
			return true
		}
	case time.November:
		// Veterans' Day, Monday if Sunday
		if d == 11 || (d == 12 && w == time.Monday) {
			return true
		}
		// Thanksgiving, fourth Thursday
		if w == time.Thursday && d >= 22 && d <= 28 {
			return true
		}
	case time.December:
		if isObserved(t, 25) {
			return true
		}
	}

	goodFriday := easterSunday(y).AddDate(0, 0, -2)
	return m == goodFriday.Month() && d == goodFriday.Day()
}

// isObserved reports whether t is the observed date of a fixed-date holiday
// in t's month: Friday if it falls on Saturday, Monday if on Sunday.
func isObserved(t time.Time, day int) bool {
	d := t.Day()
	switch t.Weekday() {
	case time.Friday:
		return d == day || d == day-1
	case time.Monday:
		return d == day || d == day+1
	default:
		return d == day
	}
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
