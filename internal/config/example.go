package config

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const exampleHeader = `# pebdcalc input document
# Dates are YYYY-MM-DD. An empty end leaves a period open; it is resolved to EOS.
# Period kinds: active, inactive, dep, lost_time.
# rule_set names a preset (see "pebdcalc presets"); an optional "rules:" block
# overrides individual preset fields.
`

// ExampleDocument returns a small but complete input document.
func ExampleDocument() *InputDocument {
	points := 48
	return &InputDocument{
		RuleSet: DefaultPreset,
		ReferenceDates: ReferenceDatesInput{
			DOEAF:        "2009-06-15",
			Reenlistment: "2015-01-05",
			EOS:          "2014-12-31",
		},
		Periods: []PeriodInput{
			{Kind: "dep", Start: "2009-01-10", End: "2009-06-14", IDTPerformed: true},
			{Kind: "active", Start: "2009-06-15", End: "2013-06-14"},
			{Kind: "inactive", Start: "2013-06-15", End: "2014-12-31", ExplicitPoints: &points},
			{Kind: "lost_time", Start: "2011-03-01", End: "2011-03-10"},
		},
	}
}

// WriteExample writes the example document as commented YAML.
func WriteExample(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(exampleHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ExampleDocument()); err != nil {
		return fmt.Errorf("failed to encode example: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode example: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
