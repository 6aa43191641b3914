package dateutil

import (
	"fmt"
	"time"
)

// Convention selects how the end date of a period is treated before differencing.
type Convention string

const (
	// ActualInclusive counts every calendar day, both ends included.
	ActualInclusive Convention = "actual_inclusive"
	// ThirtyDayMonth normalizes month-end days to day 30 before differencing.
	ThirtyDayMonth Convention = "thirty_day_month"
)

// FebruaryRule selects how ThirtyDayMonth treats the last day of February.
type FebruaryRule string

const (
	// FebruaryCalendar leaves February end dates untouched.
	FebruaryCalendar FebruaryRule = "calendar"
	// FebruaryLeapOnly treats Feb 29 as day 30 and keeps Feb 28 in non-leap years.
	FebruaryLeapOnly FebruaryRule = "leap_only"
	// FebruaryEndOfMonth treats the last day of February as day 30 in every year.
	FebruaryEndOfMonth FebruaryRule = "end_of_month"
)

// DayCount is a complete day-count convention.
type DayCount struct {
	Convention Convention   `yaml:"convention" json:"convention"`
	February   FebruaryRule `yaml:"february,omitempty" json:"february,omitempty"`
}

// Validate checks that the convention and February rule are known.
func (dc DayCount) Validate() error {
	switch dc.Convention {
	case ActualInclusive, ThirtyDayMonth:
	default:
		return fmt.Errorf("unknown day-count convention %q", dc.Convention)
	}
	switch dc.February {
	case "", FebruaryCalendar, FebruaryLeapOnly, FebruaryEndOfMonth:
	default:
		return fmt.Errorf("unknown february rule %q", dc.February)
	}
	return nil
}

// InclusiveDays returns the number of days in [start, end] under dc.
func InclusiveDays(start, end time.Time, dc DayCount) (int, error) {
	start, end = Normalize(start), Normalize(end)
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s..%s", ErrInvertedRange, Format(start), Format(end))
	}
	if dc.Convention == ThirtyDayMonth {
		end = normalizeEnd(end, dc.February)
		if end.Before(start) {
			end = start
		}
	}
	return DaysBetween(start, end) + 1, nil
}

// InclusiveDaysString parses both dates and counts the days between them.
func InclusiveDaysString(start, end string, dc DayCount) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return InclusiveDays(s, e, dc)
}

// normalizeEnd applies the thirty-day-month adjustment. A February day 30 is
// built with time.Date, so the count continues into March.
func normalizeEnd(end time.Time, rule FebruaryRule) time.Time {
	day := end.Day()
	switch {
	case day == 31:
		day = 30
	case end.Month() == time.February:
		lastDay := day == 29 || (day == 28 && !IsLeapYear(end.Year()))
		switch rule {
		case FebruaryLeapOnly:
			if day == 29 {
				day = 30
			}
		case FebruaryEndOfMonth:
			if lastDay {
				day = 30
			}
		}
	}
	return time.Date(end.Year(), end.Month(), day, 0, 0, 0, 0, time.UTC)
}
