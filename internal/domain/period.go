package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// PeriodKind classifies a service period.
type PeriodKind string

const (
	PeriodActive   PeriodKind = "active"
	PeriodInactive PeriodKind = "inactive"
	PeriodDEP      PeriodKind = "dep"
	PeriodLostTime PeriodKind = "lost_time"
)

// PeriodKinds lists every kind in registry order.
var PeriodKinds = []PeriodKind{PeriodDEP, PeriodActive, PeriodInactive, PeriodLostTime}

// ParsePeriodKind accepts the canonical kind names and a few common spellings.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "active_duty":
		return PeriodActive, nil
	case "inactive", "reserve", "inactive_duty":
		return PeriodInactive, nil
	case "dep", "delayed_entry":
		return PeriodDEP, nil
	case "lost_time", "lost", "losttime":
		return PeriodLostTime, nil
	default:
		return "", fmt.Errorf("unknown period kind %q", s)
	}
}

// Label returns the display name of the kind.
func (k PeriodKind) Label() string {
	switch k {
	case PeriodActive:
		return "Active"
	case PeriodInactive:
		return "Inactive"
	case PeriodDEP:
		return "DEP"
	case PeriodLostTime:
		return "Lost Time"
	default:
		return string(k)
	}
}

// PeriodMetadata carries the optional per-period attributes.
type PeriodMetadata struct {
	IDTPerformed   bool
	ExplicitPoints *int
}

// ServicePeriod is one dated span of service. A nil End means the period is open.
type ServicePeriod struct {
	Kind           PeriodKind
	Start          time.Time
	End            *time.Time
	IDTPerformed   bool
	ExplicitPoints *int
}

// NewServicePeriod validates and builds a period. Dates are normalized to calendar days.
func NewServicePeriod(kind PeriodKind, start time.Time, end *time.Time, meta PeriodMetadata) (ServicePeriod, error) {
	p := ServicePeriod{
		Kind:           kind,
		Start:          dateutil.Normalize(start),
		IDTPerformed:   meta.IDTPerformed,
		ExplicitPoints: meta.ExplicitPoints,
	}
	if end != nil {
		e := dateutil.Normalize(*end)
		if e.Before(p.Start) {
			return ServicePeriod{}, fmt.Errorf("%w: %s", dateutil.ErrInvertedRange, rangeString(p.Start, &e))
		}
		p.End = &e
	}
	return p, nil
}

// IsOpen reports whether the period has no end date.
func (p ServicePeriod) IsOpen() bool {
	return p.End == nil
}

// Days returns the inclusive day count of a closed period.
func (p ServicePeriod) Days(dc dateutil.DayCount) (int, error) {
	if p.End == nil {
		return 0, fmt.Errorf("period %s is open-ended", p)
	}
	return dateutil.InclusiveDays(p.Start, *p.End, dc)
}

// String renders "kind start..end".
func (p ServicePeriod) String() string {
	return string(p.Kind) + " " + rangeString(p.Start, p.End)
}

// CapEnd returns the period with its end bounded by eos, and whether the bounds
// changed. Open periods resolve to eos. DEP periods are never capped.
func CapEnd(p ServicePeriod, eos time.Time) (ServicePeriod, bool) {
	if p.Kind == PeriodDEP {
		return p, false
	}
	eos = dateutil.Normalize(eos)
	if p.End != nil && !p.End.After(eos) {
		return p, false
	}
	capped := p
	capped.End = &eos
	return capped, true
}

func rangeString(start time.Time, end *time.Time) string {
	e := "open"
	if end != nil {
		e = dateutil.Format(*end)
	}
	return dateutil.Format(start) + ".." + e
}
