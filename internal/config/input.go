package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// ReferenceDatesInput holds the member reference dates as ISO strings.
type ReferenceDatesInput struct {
	DOEAF           string `yaml:"doeaf" json:"doeaf" validate:"required,isodate"`
	Reenlistment    string `yaml:"reenlistment" json:"reenlistment" validate:"required,isodate"`
	EOS             string `yaml:"eos" json:"eos" validate:"required,isodate"`
	FirstActiveDuty string `yaml:"first_active_duty,omitempty" json:"first_active_duty,omitempty" validate:"omitempty,isodate"`
}

// PeriodInput is one service period as written in an input document.
type PeriodInput struct {
	Kind           string `yaml:"kind" json:"kind" validate:"required,period_kind"`
	Start          string `yaml:"start" json:"start" validate:"required,isodate"`
	End            string `yaml:"end,omitempty" json:"end,omitempty" validate:"omitempty,isodate"`
	IDTPerformed   bool   `yaml:"idt_performed,omitempty" json:"idt_performed,omitempty"`
	ExplicitPoints *int   `yaml:"explicit_points,omitempty" json:"explicit_points,omitempty" validate:"omitempty,min=0"`
}

// InputDocument is the YAML input format: reference dates, periods and the
// rule set to run under. Rules, when present, overlays the named rule set.
type InputDocument struct {
	RuleSet                  string              `yaml:"rule_set,omitempty" json:"rule_set,omitempty"`
	ConstructiveServiceYears int                 `yaml:"constructive_service_years,omitempty" json:"constructive_service_years,omitempty" validate:"min=0"`
	ReferenceDates           ReferenceDatesInput `yaml:"reference_dates" json:"reference_dates"`
	Periods                  []PeriodInput       `yaml:"periods" json:"periods" validate:"dive"`
	Rules                    yaml.Node           `yaml:"rules,omitempty" json:"-" validate:"-"`
}

// InputParser handles parsing of input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads and validates an input document.
func (ip *InputParser) LoadFromFile(filename string) (*InputDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	doc, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

// Parse decodes and validates an input document. Unknown fields are rejected.
func (ip *InputParser) Parse(data []byte) (*InputDocument, error) {
	var doc InputDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &doc, nil
}

// ValidateDocument runs the structural checks on a decoded document.
func (ip *InputParser) ValidateDocument(doc *InputDocument) error {
	if err := validate.Struct(doc); err != nil {
		return toComputationError(err)
	}
	return nil
}

// ResolveRules returns the document's rule set with any inline overrides applied.
func (ip *InputParser) ResolveRules(doc *InputDocument) (domain.RuleConfiguration, error) {
	rules, err := Preset(doc.RuleSet)
	if err != nil {
		return rules, err
	}
	if doc.Rules.Kind != 0 {
		if err := doc.Rules.Decode(&rules); err != nil {
			return rules, fmt.Errorf("rule overrides: %w", err)
		}
		if !strings.HasSuffix(rules.Name, "+overrides") {
			rules.Name += "+overrides"
		}
	}
	if err := rules.Validate(); err != nil {
		return rules, fmt.Errorf("rule set %q: %w", rules.Name, err)
	}
	return rules, nil
}

// BuildInput converts a document into the engine input, parsing every date.
func (ip *InputParser) BuildInput(doc *InputDocument) (*domain.ComputationInput, error) {
	ref, err := parseReferenceDates(doc.ReferenceDates)
	if err != nil {
		return nil, err
	}

	reg := domain.NewRegistry()
	for i, p := range doc.Periods {
		kind, err := domain.ParsePeriodKind(p.Kind)
		if err != nil {
			return nil, domain.NewComputationError(domain.KindInvalidInput, fmt.Sprintf("periods[%d].kind", i), p.Kind, err.Error())
		}
		meta := domain.PeriodMetadata{IDTPerformed: p.IDTPerformed, ExplicitPoints: p.ExplicitPoints}
		if err := reg.AddPeriod(kind, p.Start, p.End, meta); err != nil {
			return nil, err
		}
	}

	return &domain.ComputationInput{
		Reference:                ref,
		Registry:                 reg,
		ConstructiveServiceYears: doc.ConstructiveServiceYears,
	}, nil
}

// Load reads a document and returns the engine input and its rule set.
func (ip *InputParser) Load(filename string) (*domain.ComputationInput, domain.RuleConfiguration, error) {
	doc, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, domain.RuleConfiguration{}, err
	}
	rules, err := ip.ResolveRules(doc)
	if err != nil {
		return nil, rules, err
	}
	input, err := ip.BuildInput(doc)
	if err != nil {
		return nil, rules, err
	}
	return input, rules, nil
}

func parseReferenceDates(in ReferenceDatesInput) (domain.ReferenceDates, error) {
	var ref domain.ReferenceDates
	for _, f := range []struct {
		field string
		value string
		dst   *time.Time
	}{
		{"reference_dates.doeaf", in.DOEAF, &ref.DOEAF},
		{"reference_dates.reenlistment", in.Reenlistment, &ref.Reenlistment},
		{"reference_dates.eos", in.EOS, &ref.EOS},
	} {
		t, err := dateutil.ParseDate(f.value)
		if err != nil {
			return ref, domain.NewComputationError(domain.KindInvalidDate, f.field, f.value, "expected YYYY-MM-DD")
		}
		*f.dst = t
	}

	if strings.TrimSpace(in.FirstActiveDuty) != "" {
		t, err := dateutil.ParseDate(in.FirstActiveDuty)
		if err != nil {
			return ref, domain.NewComputationError(domain.KindInvalidDate, "reference_dates.first_active_duty",
				in.FirstActiveDuty, "expected YYYY-MM-DD")
		}
		ref.FirstActiveDuty = &t
	}
	return ref, nil
}
