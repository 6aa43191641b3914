package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// Registry holds a member's service periods, one ordered sequence per kind.
// Insertion order is preserved; consumers sort when they need to.
type Registry struct {
	periods map[PeriodKind][]ServicePeriod
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{periods: make(map[PeriodKind][]ServicePeriod)}
}

// AddPeriod parses ISO dates and appends a period. An empty end leaves the period open.
func (r *Registry) AddPeriod(kind PeriodKind, start, end string, meta PeriodMetadata) error {
	field := r.fieldName(kind)

	startDate, err := dateutil.ParseDate(start)
	if err != nil {
		return wrapDateError(err, field+".start", start)
	}

	var endDate *time.Time
	if strings.TrimSpace(end) != "" {
		e, err := dateutil.ParseDate(end)
		if err != nil {
			return wrapDateError(err, field+".end", end)
		}
		endDate = &e
	}

	return r.add(kind, startDate, endDate, meta, field)
}

// Add appends an already parsed period after validating it.
func (r *Registry) Add(p ServicePeriod) error {
	return r.add(p.Kind, p.Start, p.End, PeriodMetadata{
		IDTPerformed:   p.IDTPerformed,
		ExplicitPoints: p.ExplicitPoints,
	}, r.fieldName(p.Kind))
}

func (r *Registry) add(kind PeriodKind, start time.Time, end *time.Time, meta PeriodMetadata, field string) error {
	if !knownKind(kind) {
		return NewComputationError(KindInvalidInput, field+".kind", string(kind), "unknown period kind")
	}
	p, err := NewServicePeriod(kind, start, end, meta)
	if err != nil {
		return wrapDateError(err, field, rangeString(start, end))
	}
	if r.periods == nil {
		r.periods = make(map[PeriodKind][]ServicePeriod)
	}
	r.periods[kind] = append(r.periods[kind], p)
	return nil
}

// Periods returns a copy of the periods of one kind in insertion order.
func (r *Registry) Periods(kind PeriodKind) []ServicePeriod {
	if r == nil {
		return nil
	}
	src := r.periods[kind]
	out := make([]ServicePeriod, len(src))
	copy(out, src)
	return out
}

// All returns every period, grouped by kind in PeriodKinds order.
func (r *Registry) All() []ServicePeriod {
	var out []ServicePeriod
	for _, kind := range PeriodKinds {
		out = append(out, r.Periods(kind)...)
	}
	return out
}

// Len returns the total number of periods.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, ps := range r.periods {
		n += len(ps)
	}
	return n
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	if r == nil {
		return clone
	}
	for kind, ps := range r.periods {
		cp := make([]ServicePeriod, len(ps))
		copy(cp, ps)
		clone.periods[kind] = cp
	}
	return clone
}

// Remove drops every period of the given kind.
func (r *Registry) Remove(kind PeriodKind) {
	if r != nil {
		delete(r.periods, kind)
	}
}

// Replace swaps the periods of one kind for the given sequence.
func (r *Registry) Replace(kind PeriodKind, periods []ServicePeriod) {
	if r.periods == nil {
		r.periods = make(map[PeriodKind][]ServicePeriod)
	}
	cp := make([]ServicePeriod, len(periods))
	copy(cp, periods)
	r.periods[kind] = cp
}

// fieldName is the path of the next period of kind, e.g. "periods.active[2]".
func (r *Registry) fieldName(kind PeriodKind) string {
	n := 0
	if r != nil && r.periods != nil {
		n = len(r.periods[kind])
	}
	return fmt.Sprintf("periods.%s[%d]", kind, n)
}

func knownKind(kind PeriodKind) bool {
	for _, k := range PeriodKinds {
		if k == kind {
			return true
		}
	}
	return false
}
