package integration

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/calculation"
	"github.com/rgehrsitz/pebdcalc/internal/config"
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../testdata/"

// computeFixture loads a document from testdata and runs it under its own rule set.
func computeFixture(t *testing.T, name string) *domain.ComputationResult {
	t.Helper()
	input, rules, err := config.NewInputParser().Load(testdata + name)
	require.NoError(t, err)

	result, err := calculation.NewCalculationEngine().Compute(input, rules)
	require.NoError(t, err)
	return result
}

// TestIntegrationSuite runs every fixture end to end: parse, resolve rules, compute.
func TestIntegrationSuite(t *testing.T) {
	t.Run("continuous_service", func(t *testing.T) {
		result := computeFixture(t, "continuous.yaml")

		assert.Equal(t, "standard", result.RuleSet)
		assert.Equal(t, "2015-01-01", dateutil.Format(result.PEBD))
		assert.Equal(t, "2010-12-31", dateutil.FormatPtr(result.BASD))
		assert.Equal(t, 1462, result.NetServiceDays)
		assert.Equal(t, "04 Years, 00 Months, 02 Days", result.CreditableService.String())
		assert.False(t, result.BreakInService)
		assert.Equal(t, "2023-01-01", dateutil.Format(result.ExpectedEOS))
		assert.True(t, result.ObligationShortfall)
	})

	t.Run("break_in_service", func(t *testing.T) {
		result := computeFixture(t, "break_in_service.yaml")

		assert.True(t, result.BreakInService)
		assert.Equal(t, "2010-07-04", dateutil.Format(result.PEBD))
		assert.Equal(t, 181, result.NetServiceDays)
	})

	t.Run("reserve_points", func(t *testing.T) {
		result := computeFixture(t, "reserve.yaml")

		pts, ok := result.PointsFor("2015-2016")
		require.True(t, ok)
		assert.Equal(t, 36, pts)
		assert.Equal(t, 36, result.TotalRetirementPoints)
	})

	t.Run("rule_overrides", func(t *testing.T) {
		result := computeFixture(t, "lost_time_overrides.yaml")

		assert.Equal(t, "standard+overrides", result.RuleSet)
		assert.Equal(t, "2015-01-01", dateutil.Format(result.PEBD), "lost time does not shift the PEBD")
		assert.Equal(t, 1452, result.NetServiceDays)
	})
}

func TestIntegrationErrors(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		wantKind  domain.ErrorKind
		wantField string
		sentinel  error
	}{
		{"february 30", "invalid_date.yaml", domain.KindInvalidDate, "reference_dates.eos", domain.ErrInvalidDate},
		{"reenlistment before DOEAF", "invalid_ordering.yaml", domain.KindInvalidOrdering, "reference_dates.reenlistment", domain.ErrInvalidOrdering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, rules, err := config.NewInputParser().Load(testdata + tt.fixture)
			if err == nil {
				_, err = calculation.NewCalculationEngine().Compute(input, rules)
			}
			require.Error(t, err)

			var ce *domain.ComputationError
			require.True(t, errors.As(err, &ce), "expected a ComputationError, got %v", err)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.wantField, ce.Field)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

// TestIntegrationRegression checks that repeated runs over the same input agree.
func TestIntegrationRegression(t *testing.T) {
	input, rules, err := config.NewInputParser().Load(testdata + "break_in_service.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	first, err := engine.Compute(input, rules)
	require.NoError(t, err)
	second, err := engine.Compute(input, rules)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
