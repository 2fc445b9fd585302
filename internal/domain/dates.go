package domain

import "time"

// DateOnly drops the clock and zone, keeping the calendar day as UTC midnight
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDate reports whether date is before the calendar day of now.
// now must already be expressed in the business time zone; today is not past.
func IsPastDate(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// SameDate reports whether two values fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
