package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// validate is the structural validator for input documents.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := dateutil.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("period_kind", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePeriodKind(fl.Field().String())
		return err == nil
	})

	// report fields by their document names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// toComputationError converts the first validator failure into a typed error
// carrying the document path of the field.
func toComputationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	value := fmt.Sprint(reflect.Indirect(reflect.ValueOf(fe.Value())))

	switch fe.Tag() {
	case "isodate":
		return domain.NewComputationError(domain.KindInvalidDate, field, value, "expected YYYY-MM-DD")
	case "required":
		return domain.NewComputationError(domain.KindInvalidInput, field, "", "field is required")
	case "period_kind":
		return domain.NewComputationError(domain.KindInvalidInput, field, value, "unknown period kind")
	case "min":
		return domain.NewComputationError(domain.KindInvalidInput, field, value, "minimum value is "+fe.Param())
	default:
		return domain.NewComputationError(domain.KindInvalidInput, field, value, "validation failed: "+fe.Tag())
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
