// Package dateutil holds the calendar arithmetic used by the service-date engine:
// strict ISO parsing, inclusive day counts under a day-count convention, day shifts
// and the two duration breakdowns (normalized and calendar-aware).
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted date representation.
const Layout = "2006-01-02"

var (
	// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvertedRange is returned when an end date precedes its start date.
	ErrInvertedRange = errors.New("inverted range: end before start")

	// ErrInvalidYearLength is returned for year lengths other than 360 or 365.
	ErrInvalidYearLength = errors.New("invalid year length")
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight date. Surrounding
// whitespace is rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals known to be valid. It panics otherwise.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize strips any time-of-day and location, keeping the calendar date.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// FormatPtr renders an optional date, returning "" for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the signed number of whole days from a to b. It works on
// Unix seconds because time.Duration saturates after about 292 years.
func DaysBetween(a, b time.Time) int {
	return int((Normalize(b).Unix() - Normalize(a).Unix()) / secondsPerDay)
}

// ShiftDays moves a date forward (positive delta) or backward (negative delta).
func ShiftDays(reference time.Time, delta int) time.Time {
	return Normalize(reference).AddDate(0, 0, delta)
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Earliest returns the earliest of the given dates. ok is false when dates is empty.
func Earliest(dates ...time.Time) (earliest time.Time, ok bool) {
	for i, d := range dates {
		if i == 0 || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest, len(dates) > 0
}

// Later returns the later of two dates.
func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// Earlier returns the earlier of two dates.
func Earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
