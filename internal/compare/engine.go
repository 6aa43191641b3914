package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pebdcalc/internal/calculation"
	"github.com/rgehrsitz/pebdcalc/internal/config"
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/internal/transform"
)

// CompareEngine orchestrates rule set and what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseRules  domain.RuleConfiguration   // Rule set of the base run
	Presets    []string                   // Alternative presets run on the same input
	Templates  []string                   // What-if templates run under the base rules
	Transforms []transform.InputTransform // Applied to the input before every run
}

// Compare runs the base computation and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	input *domain.ComputationInput,
	options CompareOptions,
) (*ComparisonSet, error) {

	base, err := transform.ApplyTransforms(input, options.Transforms)
	if err != nil {
		return nil, fmt.Errorf("failed to apply transforms: %w", err)
	}
	applied := transform.Describe(options.Transforms)

	baseComputation, err := ce.CalcEngine.Compute(base, options.BaseRules)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(options.BaseRules.Name, baseComputation)
	baseResult.Description = options.BaseRules.Description
	baseResult.Transforms = applied

	alternatives := []ComparisonResult{}

	for _, presetName := range options.Presets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rules, err := config.Preset(presetName)
		if err != nil {
			return nil, err
		}

		computation, err := ce.CalcEngine.Compute(base, rules)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate preset %s: %w", rules.Name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(rules.Name, computation)
		altResult.Description = rules.Description
		altResult.Transforms = applied
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		// Apply template to create modified input
		modified, err := transform.ApplyTransforms(base, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		computation, err := ce.CalcEngine.Compute(modified, options.BaseRules)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(options.BaseRules.Name+"_"+template.Name, computation)
		altResult.Description = template.Description
		altResult.Transforms = append(append([]string{}, applied...), transform.Describe(template.Transforms)...)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseRules.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Findings = GenerateFindings(compSet)

	return compSet, nil
}
