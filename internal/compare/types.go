package compare

import (
	"fmt"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// ComparisonResult represents one rule set / input variant with its key metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	RuleSet      string                    `json:"ruleSet"`
	Description  string                    `json:"description,omitempty"`
	Transforms   []string                  `json:"transforms,omitempty"`
	Result       *domain.ComputationResult `json:"-"`

	// Key Metrics
	PEBD                  string `json:"pebd"`
	BASD                  string `json:"basd,omitempty"`
	AFADBD                string `json:"afadbd,omitempty"`
	NetServiceDays        int    `json:"netServiceDays"`
	CreditableService     string `json:"creditableService"`
	BreakInService        bool   `json:"breakInService"`
	TotalRetirementPoints int    `json:"totalRetirementPoints"`
	NewEOS                string `json:"newEOS"`

	// Comparison to Base
	PEBDShiftFromBase    int  `json:"pebdShiftFromBase"` // days; positive means a later PEBD
	NetDaysDiffFromBase  int  `json:"netDaysDiffFromBase"`
	PointsDiffFromBase   int  `json:"pointsDiffFromBase"`
	BreakChangedFromBase bool `json:"breakChangedFromBase"`
}

// ComparisonSet represents a collection of variant comparisons against one base
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Findings           []string           `json:"findings"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// MetricsCalculator extracts key metrics from computation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics flattens a computation result into a comparison row
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.ComputationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:          name,
		RuleSet:               result.RuleSet,
		Result:                result,
		PEBD:                  dateutil.Format(result.PEBD),
		BASD:                  dateutil.FormatPtr(result.BASD),
		AFADBD:                dateutil.FormatPtr(result.AFADBD),
		NetServiceDays:        result.NetServiceDays,
		CreditableService:     result.CreditableService.String(),
		BreakInService:        result.BreakInService,
		TotalRetirementPoints: result.TotalRetirementPoints,
		NewEOS:                dateutil.Format(result.NewEOS),
	}
}

// CalculateComparison computes deltas between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	if scenario.Result != nil && base.Result != nil {
		scenario.PEBDShiftFromBase = dateutil.DaysBetween(base.Result.PEBD, scenario.Result.PEBD)
	}
	scenario.NetDaysDiffFromBase = scenario.NetServiceDays - base.NetServiceDays
	scenario.PointsDiffFromBase = scenario.TotalRetirementPoints - base.TotalRetirementPoints
	scenario.BreakChangedFromBase = scenario.BreakInService != base.BreakInService
	return scenario
}

// GenerateFindings summarizes where the alternatives differ from the base
func GenerateFindings(compSet *ComparisonSet) []string {
	findings := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return findings
	}

	// Earliest PEBD
	earliest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PEBDShiftFromBase < earliest.PEBDShiftFromBase {
			earliest = alt
		}
	}
	if earliest != compSet.BaseResult {
		findings = append(findings, fmt.Sprintf("Earliest PEBD: %s gives %s, %d days before base",
			earliest.ScenarioName, earliest.PEBD, -earliest.PEBDShiftFromBase))
	}

	// Most creditable service
	most := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetServiceDays > most.NetServiceDays {
			most = alt
		}
	}
	if most != compSet.BaseResult {
		findings = append(findings, fmt.Sprintf("Most Service: %s credits %d more days than base",
			most.ScenarioName, most.NetDaysDiffFromBase))
	}

	// Most retirement points
	mostPoints := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalRetirementPoints > mostPoints.TotalRetirementPoints {
			mostPoints = alt
		}
	}
	if mostPoints != compSet.BaseResult {
		findings = append(findings, fmt.Sprintf("Most Points: %s earns %d more retirement points than base",
			mostPoints.ScenarioName, mostPoints.PointsDiffFromBase))
	}

	for _, alt := range compSet.AlternativeResults {
		if !alt.BreakChangedFromBase {
			continue
		}
		if alt.BreakInService {
			findings = append(findings, fmt.Sprintf("Break: %s finds a break in service the base does not", alt.ScenarioName))
		} else {
			findings = append(findings, fmt.Sprintf("Break: %s finds no break in service", alt.ScenarioName))
		}
	}

	return findings
}
