package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Rule Set",
		"PEBD",
		"BASD",
		"AFADBD",
		"Net Service Days",
		"Creditable Service",
		"Break In Service",
		"Retirement Points",
		"New EOS",
		"PEBD Shift (Days)",
		"Net Days Diff",
		"Points Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.RuleSet,
		result.PEBD,
		result.BASD,
		result.AFADBD,
		strconv.Itoa(result.NetServiceDays),
		result.CreditableService,
		strconv.FormatBool(result.BreakInService),
		strconv.Itoa(result.TotalRetirementPoints),
		result.NewEOS,
		strconv.Itoa(result.PEBDShiftFromBase),
		strconv.Itoa(result.NetDaysDiffFromBase),
		strconv.Itoa(result.PointsDiffFromBase),
	}
}
