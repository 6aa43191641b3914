package transform

import (
	"fmt"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
)

// InputTransform is a composable what-if modification of a computation input.
type InputTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base *domain.ComputationInput) (*domain.ComputationInput, error)

	// Name returns the registry identifier, e.g. "set_reenlistment".
	Name() string

	// Description returns a human-readable summary of the modification.
	Description() string

	// Validate checks the parameters against base without applying them.
	Validate(base *domain.ComputationInput) error
}

// ApplyTransforms applies transforms in order, each receiving the previous output.
func ApplyTransforms(base *domain.ComputationInput, transforms []InputTransform) (*domain.ComputationInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	current := base.Clone()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain.
func Describe(transforms []InputTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
