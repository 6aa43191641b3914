package domain

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// ErrorKind names a class of computation failure surfaced to callers.
type ErrorKind string

const (
	KindInvalidDate        ErrorKind = "InvalidDate"
	KindInvertedRange      ErrorKind = "InvertedRange"
	KindInvalidOrdering    ErrorKind = "InvalidOrdering"
	KindInvalidInput       ErrorKind = "InvalidInput"
	KindPointsExceedPeriod ErrorKind = "PointsExceedPeriod"
)

// Sentinel errors for use with errors.Is. The date sentinels are shared with
// dateutil so that low-level parse failures match as well.
var (
	ErrInvalidDate        = dateutil.ErrInvalidDate
	ErrInvertedRange      = dateutil.ErrInvertedRange
	ErrInvalidOrdering    = errors.New("invalid ordering")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPointsExceedPeriod = errors.New("points exceed period")
)

// ComputationError carries the offending field and value of a rejected input.
type ComputationError struct {
	Kind    ErrorKind
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ComputationError) Error() string {
	msg := fmt.Sprintf("%s: %s=%q", e.Kind, e.Field, e.Value)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the sentinel for the error kind.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

// NewComputationError builds a ComputationError whose Unwrap matches the sentinel for kind.
func NewComputationError(kind ErrorKind, field, value, message string) error {
	return &ComputationError{
		Kind:    kind,
		Field:   field,
		Value:   value,
		Message: message,
		Err:     sentinelFor(kind),
	}
}

// wrapDateError converts a dateutil failure into a ComputationError for field.
func wrapDateError(err error, field, value string) error {
	switch {
	case errors.Is(err, dateutil.ErrInvalidDate):
		return NewComputationError(KindInvalidDate, field, value, "expected YYYY-MM-DD")
	case errors.Is(err, dateutil.ErrInvertedRange):
		return NewComputationError(KindInvertedRange, field, value, "end precedes start")
	default:
		return err
	}
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindInvalidDate:
		return ErrInvalidDate
	case KindInvertedRange:
		return ErrInvertedRange
	case KindInvalidOrdering:
		return ErrInvalidOrdering
	case KindPointsExceedPeriod:
		return ErrPointsExceedPeriod
	default:
		return ErrInvalidInput
	}
}
