package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_reenlistment", createSetReenlistment)
	registry.Register("reenlist_after_eos", createReenlistAfterEOS)
	registry.Register("set_eos", createSetEOS)
	registry.Register("add_constructive_years", createAddConstructiveYears)
	registry.Register("set_idt", createSetIDT)
	registry.Register("drop_kind", createDropKind)
	registry.Register("add_period", createAddPeriod)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_idt:index=0,performed=true"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs in order.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]InputTransform, error) {
	transforms := make([]InputTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func createSetReenlistment(params map[string]string) (InputTransform, error) {
	dateStr, err := requireParam(params, "set_reenlistment", "date")
	if err != nil {
		return nil, err
	}
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return &SetReenlistment{Date: date}, nil
}

func createReenlistAfterEOS(params map[string]string) (InputTransform, error) {
	daysStr, err := requireParam(params, "reenlist_after_eos", "days")
	if err != nil {
		return nil, err
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return nil, fmt.Errorf("invalid days value: %w", err)
	}
	return &ReenlistAfterEOS{Days: days}, nil
}

func createSetEOS(params map[string]string) (InputTransform, error) {
	dateStr, err := requireParam(params, "set_eos", "date")
	if err != nil {
		return nil, err
	}
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return &SetEOS{Date: date}, nil
}

func createAddConstructiveYears(params map[string]string) (InputTransform, error) {
	yearsStr, err := requireParam(params, "add_constructive_years", "years")
	if err != nil {
		return nil, err
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &AddConstructiveYears{Years: years}, nil
}

func createSetIDT(params map[string]string) (InputTransform, error) {
	index := AllPeriods
	if s, ok := params["index"]; ok && s != "all" {
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid index value: %w", err)
		}
		index = i
	}

	performed := true
	if s, ok := params["performed"]; ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid performed value: %w", err)
		}
		performed = b
	}
	return &SetIDT{Index: index, Performed: performed}, nil
}

func createDropKind(params map[string]string) (InputTransform, error) {
	kindStr, err := requireParam(params, "drop_kind", "kind")
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParsePeriodKind(kindStr)
	if err != nil {
		return nil, err
	}
	return &DropKind{Kind: kind}, nil
}

func createAddPeriod(params map[string]string) (InputTransform, error) {
	kindStr, err := requireParam(params, "add_period", "kind")
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParsePeriodKind(kindStr)
	if err != nil {
		return nil, err
	}
	startStr, err := requireParam(params, "add_period", "start")
	if err != nil {
		return nil, err
	}

	reg := domain.NewRegistry()
	if err := reg.AddPeriod(kind, startStr, params["end"], domain.PeriodMetadata{}); err != nil {
		return nil, fmt.Errorf("add_period: %w", err)
	}
	return &AddPeriod{Period: reg.Periods(kind)[0]}, nil
}
