package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
)

// Formatter renders a computation result in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.ComputationResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(result *domain.ComputationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.ComputationResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{
	"json":         JSONFormatter{},
	"json-compact": JSONFormatter{Compact: true},
	"yaml":         YAMLFormatter{},
	"csv":          CSVSummarizer{},
	"periods-csv":  PeriodsCSVFormatter{},
}

var formatAliases = map[string]string{
	"yml":          "yaml",
	"summary-csv":  "csv",
	"detailed-csv": "periods-csv",
}

// GetFormatterByName returns the formatter registered under name or one of its
// aliases, or nil.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames lists the registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders result with f and saves it as
// pebd_report_<rule set>_<timestamp>.<ext> in the working directory.
func WriteFormatted(f Formatter, result *domain.ComputationResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}

	ruleSet := result.RuleSet
	if ruleSet == "" {
		ruleSet = "custom"
	}
	filename := fmt.Sprintf("pebd_report_%s_%s.%s", ruleSet, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
