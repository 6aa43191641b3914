package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/calculation"
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/internal/transform"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenServiceInput is six months of active duty followed by a 185-day gap.
func brokenServiceInput(t *testing.T) *domain.ComputationInput {
	t.Helper()
	reg := domain.NewRegistry()
	require.NoError(t, reg.AddPeriod(domain.PeriodActive, "2010-01-01", "2010-06-30", domain.PeriodMetadata{}))
	return &domain.ComputationInput{
		Reference: domain.ReferenceDates{
			DOEAF:        dateutil.MustParseDate("2010-01-01"),
			Reenlistment: dateutil.MustParseDate("2011-01-01"),
			EOS:          dateutil.MustParseDate("2010-06-30"),
		},
		Registry: reg,
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), brokenServiceInput(t), CompareOptions{
		BaseRules: domain.StandardRules(),
		Presets:   []string{"pebd-v2.1"},
		Templates: []string{"reenlist_next_day"},
	})
	require.NoError(t, err)

	assert.Equal(t, "standard", compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "2010-07-04", compSet.BaseResult.PEBD)
	assert.True(t, compSet.BaseResult.BreakInService)
	assert.Equal(t, 181, compSet.BaseResult.NetServiceDays)

	require.Len(t, compSet.AlternativeResults, 2)

	preset := compSet.AlternativeResults[0]
	assert.Equal(t, "pebd-v2.1", preset.ScenarioName)
	assert.Equal(t, "2010-07-04", preset.PEBD)
	assert.Equal(t, 0, preset.PEBDShiftFromBase)
	assert.Empty(t, preset.BASD, "pebd-v2.1 does not compute BASD")

	tmpl := compSet.AlternativeResults[1]
	assert.Equal(t, "standard_reenlist_next_day", tmpl.ScenarioName)
	assert.Equal(t, []string{"Reenlist 1 days after EOS"}, tmpl.Transforms)
	assert.False(t, tmpl.BreakInService)
	assert.True(t, tmpl.BreakChangedFromBase)
	assert.Equal(t, "2010-01-01", tmpl.PEBD)
	assert.Equal(t, -184, tmpl.PEBDShiftFromBase)
	assert.Equal(t, 0, tmpl.NetDaysDiffFromBase)

	assert.Equal(t, []string{
		"Earliest PEBD: standard_reenlist_next_day gives 2010-01-01, 184 days before base",
		"Break: standard_reenlist_next_day finds no break in service",
	}, compSet.Findings)
}

func TestCompareEngine_CompareWithTransforms(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	input := brokenServiceInput(t)

	compSet, err := engine.Compare(context.Background(), input, CompareOptions{
		BaseRules:  domain.StandardRules(),
		Transforms: []transform.InputTransform{&transform.AddConstructiveYears{Years: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 181+365, compSet.BaseResult.NetServiceDays)
	assert.Equal(t, []string{"Add 1 constructive service years"}, compSet.BaseResult.Transforms)
	assert.Empty(t, compSet.AlternativeResults)
	assert.Empty(t, compSet.Findings)

	// the caller's input is not modified
	assert.Equal(t, 0, input.ConstructiveServiceYears)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		options CompareOptions
		wantErr string
	}{
		{
			name:    "unknown preset",
			ctx:     context.Background(),
			options: CompareOptions{BaseRules: domain.StandardRules(), Presets: []string{"navy-2031"}},
			wantErr: "navy-2031",
		},
		{
			name:    "unknown template",
			ctx:     context.Background(),
			options: CompareOptions{BaseRules: domain.StandardRules(), Templates: []string{"retire_early"}},
			wantErr: "template retire_early not found",
		},
		{
			name:    "invalid base rules",
			ctx:     context.Background(),
			options: CompareOptions{BaseRules: domain.RuleConfiguration{Name: "empty"}},
			wantErr: "failed to calculate base",
		},
		{
			name:    "cancelled context",
			ctx:     cancelled,
			options: CompareOptions{BaseRules: domain.StandardRules(), Presets: []string{"standard"}},
			wantErr: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compare(tt.ctx, brokenServiceInput(t), tt.options)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
