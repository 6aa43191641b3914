package transform

import (
	"fmt"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// AllPeriods selects every period of a kind.
const AllPeriods = -1

// SetIDT sets the IDT-performed flag of one DEP period, or of all of them.
type SetIDT struct {
	Index     int
	Performed bool
}

func (t *SetIDT) Name() string {
	return "set_idt"
}

func (t *SetIDT) Description() string {
	target := fmt.Sprintf("DEP period %d", t.Index)
	if t.Index == AllPeriods {
		target = "all DEP periods"
	}
	return fmt.Sprintf("Mark IDT performed=%t on %s", t.Performed, target)
}

func (t *SetIDT) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	n := len(base.Registry.Periods(domain.PeriodDEP))
	if t.Index == AllPeriods {
		return nil
	}
	if t.Index < 0 || t.Index >= n {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("DEP period index %d out of range (%d periods)", t.Index, n), nil)
	}
	return nil
}

func (t *SetIDT) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	deps := modified.Registry.Periods(domain.PeriodDEP)
	for i := range deps {
		if t.Index == AllPeriods || t.Index == i {
			deps[i].IDTPerformed = t.Performed
		}
	}
	modified.Registry.Replace(domain.PeriodDEP, deps)
	return modified, nil
}

// DropKind removes every period of one kind.
type DropKind struct {
	Kind domain.PeriodKind
}

func (t *DropKind) Name() string {
	return "drop_kind"
}

func (t *DropKind) Description() string {
	return fmt.Sprintf("Drop all %s periods", t.Kind.Label())
}

func (t *DropKind) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if _, err := domain.ParsePeriodKind(string(t.Kind)); err != nil {
		return NewTransformError(t.Name(), "validate", "unknown period kind", err)
	}
	return nil
}

func (t *DropKind) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	modified.Registry.Remove(t.Kind)
	return modified, nil
}

// AddPeriod appends a period to the registry.
type AddPeriod struct {
	Period domain.ServicePeriod
}

func (t *AddPeriod) Name() string {
	return "add_period"
}

func (t *AddPeriod) Description() string {
	end := "open"
	if t.Period.End != nil {
		end = dateutil.Format(*t.Period.End)
	}
	return fmt.Sprintf("Add %s period %s..%s", t.Period.Kind.Label(), dateutil.Format(t.Period.Start), end)
}

func (t *AddPeriod) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if err := domain.NewRegistry().Add(t.Period); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid period", err)
	}
	return nil
}

func (t *AddPeriod) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	if err := modified.Registry.Add(t.Period); err != nil {
		return nil, NewTransformError(t.Name(), "apply", "invalid period", err)
	}
	return modified, nil
}
