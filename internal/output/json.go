package output

import (
	"encoding/json"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
)

// JSONFormatter renders the report as JSON, indented unless Compact is set.
type JSONFormatter struct {
	Compact bool
}

func (j JSONFormatter) Name() string {
	if j.Compact {
		return "json-compact"
	}
	return "json"
}

func (j JSONFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	report := NewReport(result)
	if j.Compact {
		return json.Marshal(report)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
