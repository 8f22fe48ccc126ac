// Package schedule holds the stateless date predicates the projection engine
// consults every simulated day. All functions are pure; nothing here reads a
// clock.
package schedule

import "time"

// DateOf truncates a time to midnight UTC. The engine works in whole calendar
// days, so every date passing through it is normalized first.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b,
// negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// IsPayday reports whether date is a payday on the biweekly cadence anchored
// to reference: same weekday as the reference payday, an even number of whole
// weeks away. Because same-weekday dates are always a whole multiple of seven
// days apart, the parity test is exact for dates on either side of the
// reference.
func IsPayday(date, reference time.Time) bool {
	if date.Weekday() != reference.Weekday() {
		return false
	}
	weeks := DaysBetween(reference, date) / 7
	return weeks%2 == 0
}

// IsMonthlyDue reports whether date's day-of-month numeral equals dayOfMonth.
// Days 29-31 never fire in months too short to contain them; an out-of-range
// value degrades to "never fires" rather than erroring.
func IsMonthlyDue(date time.Time, dayOfMonth int) bool {
	return date.Day() == dayOfMonth
}

// WeeklyDue reports whether at least seven whole days have elapsed since
// lastFired. The caller owns the cursor and advances it when the event fires.
func WeeklyDue(date, lastFired time.Time) bool {
	return DaysBetween(lastFired, date) >= 7
}

// NextPayday returns the first payday on or after from. The biweekly cycle
// guarantees a hit within fourteen days.
func NextPayday(from, reference time.Time) time.Time {
	d := DateOf(from)
	for i := 0; i < 14; i++ {
		if IsPayday(d, reference) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// EndOfMonth returns the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
