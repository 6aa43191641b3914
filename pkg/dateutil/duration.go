package dateutil

import (
	"fmt"
	"time"
)

const daysPerNormalizedMonth = 30

// Duration is a years/months/days triple.
type Duration struct {
	Years    int  `yaml:"years" json:"years"`
	Months   int  `yaml:"months" json:"months"`
	Days     int  `yaml:"days" json:"days"`
	Negative bool `yaml:"negative,omitempty" json:"negative,omitempty"`
}

// IsZero reports whether all components are zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0
}

// TotalDays reconstructs the day count under the given year length.
func (d Duration) TotalDays(yearLength int) int {
	total := d.Years*yearLength + d.Months*daysPerNormalizedMonth + d.Days
	if d.Negative {
		return -total
	}
	return total
}

// String renders the canonical duration format.
func (d Duration) String() string {
	return FormatDuration(d)
}

// FormatDuration renders "{years:02d} Years, {months:02d} Months, {days:02d} Days".
// Negative durations carry a leading minus sign.
func FormatDuration(d Duration) string {
	s := fmt.Sprintf("%02d Years, %02d Months, %02d Days", d.Years, d.Months, d.Days)
	if d.Negative {
		return "-" + s
	}
	return s
}

// ValidYearLength reports whether yearLength is one of the supported conventions.
func ValidYearLength(yearLength int) bool {
	return yearLength == 360 || yearLength == 365
}

// DurationBreakdown decomposes a day count into years of yearLength days,
// 30-day months and remainder days.
func DurationBreakdown(totalDays, yearLength int) (Duration, error) {
	return Breakdown(totalDays, yearLength, false)
}

// Breakdown is DurationBreakdown with the optional leap adjustment, which adds
// one day per four whole years when the remainder can absorb it.
func Breakdown(totalDays, yearLength int, leapAdjust bool) (Duration, error) {
	if !ValidYearLength(yearLength) {
		return Duration{}, fmt.Errorf("%w: %d", ErrInvalidYearLength, yearLength)
	}

	var d Duration
	if totalDays < 0 {
		d.Negative = true
		totalDays = -totalDays
	}

	d.Years = totalDays / yearLength
	remaining := totalDays % yearLength
	d.Months = remaining / daysPerNormalizedMonth
	d.Days = remaining % daysPerNormalizedMonth

	if leapAdjust {
		adjust := d.Years / 4
		if remaining >= adjust {
			d.Days += adjust
		}
		if d.Days >= daysPerNormalizedMonth {
			d.Months += d.Days / daysPerNormalizedMonth
			d.Days %= daysPerNormalizedMonth
		}
	}

	if d.Months >= 12 {
		d.Years += d.Months / 12
		d.Months %= 12
	}
	return d, nil
}

// CalendarDuration expresses the inclusive span [start, end] against real
// month and year boundaries. It returns a zero Duration when end precedes start.
func CalendarDuration(start, end time.Time) Duration {
	start, end = Normalize(start), Normalize(end)
	if end.Before(start) {
		return Duration{}
	}

	// Inclusive: measure up to the day after end.
	stop := end.AddDate(0, 0, 1)

	months := (stop.Year()-start.Year())*12 + int(stop.Month()) - int(start.Month())
	if addMonthsClamped(start, months).After(stop) {
		months--
	}
	anchor := addMonthsClamped(start, months)

	return Duration{
		Years:  months / 12,
		Months: months % 12,
		Days:   DaysBetween(anchor, stop),
	}
}

// addMonthsClamped adds n months, clamping the day to the target month's length
// instead of overflowing into the next month.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddYears moves a date by n calendar years. February 29 lands on February 28
// in common years.
func AddYears(t time.Time, n int) time.Time {
	return addMonthsClamped(Normalize(t), n*12)
}
