package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// SetReenlistment replaces the reenlistment date.
type SetReenlistment struct {
	Date time.Time
}

func (t *SetReenlistment) Name() string {
	return "set_reenlistment"
}

func (t *SetReenlistment) Description() string {
	return "Set reenlistment date to " + dateutil.Format(t.Date)
}

func (t *SetReenlistment) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if t.Date.IsZero() {
		return NewTransformError(t.Name(), "validate", "date is required", nil)
	}
	if t.Date.Before(base.Reference.DOEAF) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("reenlistment %s precedes DOEAF %s", dateutil.Format(t.Date), dateutil.Format(base.Reference.DOEAF)),
			domain.ErrInvalidOrdering)
	}
	return nil
}

func (t *SetReenlistment) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	modified.Reference.Reenlistment = dateutil.Normalize(t.Date)
	return modified, nil
}

// ReenlistAfterEOS sets the reenlistment date a number of days after the current EOS.
type ReenlistAfterEOS struct {
	Days int
}

func (t *ReenlistAfterEOS) Name() string {
	return "reenlist_after_eos"
}

func (t *ReenlistAfterEOS) Description() string {
	return fmt.Sprintf("Reenlist %d days after EOS", t.Days)
}

func (t *ReenlistAfterEOS) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if t.Days < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("days must be non-negative, got %d", t.Days), nil)
	}
	if base.Reference.EOS.IsZero() {
		return NewTransformError(t.Name(), "validate", "input has no EOS", nil)
	}
	return nil
}

func (t *ReenlistAfterEOS) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	modified.Reference.Reenlistment = dateutil.ShiftDays(base.Reference.EOS, t.Days)
	return modified, nil
}

// SetEOS replaces the end of obligated service.
type SetEOS struct {
	Date time.Time
}

func (t *SetEOS) Name() string {
	return "set_eos"
}

func (t *SetEOS) Description() string {
	return "Set EOS to " + dateutil.Format(t.Date)
}

func (t *SetEOS) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if t.Date.IsZero() {
		return NewTransformError(t.Name(), "validate", "date is required", nil)
	}
	return nil
}

func (t *SetEOS) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	modified.Reference.EOS = dateutil.Normalize(t.Date)
	return modified, nil
}

// AddConstructiveYears adds (or with a negative value removes) constructive service years.
type AddConstructiveYears struct {
	Years int
}

func (t *AddConstructiveYears) Name() string {
	return "add_constructive_years"
}

func (t *AddConstructiveYears) Description() string {
	return fmt.Sprintf("Add %d constructive service years", t.Years)
}

func (t *AddConstructiveYears) Validate(base *domain.ComputationInput) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base input cannot be nil", nil)
	}
	if total := base.ConstructiveServiceYears + t.Years; total < 0 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("constructive service years would become %d", total), domain.ErrInvalidInput)
	}
	return nil
}

func (t *AddConstructiveYears) Apply(base *domain.ComputationInput) (*domain.ComputationInput, error) {
	modified := base.Clone()
	modified.ConstructiveServiceYears += t.Years
	return modified, nil
}
