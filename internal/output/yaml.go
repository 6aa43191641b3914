package output

import (
	"bytes"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the report as a YAML document.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(result)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
