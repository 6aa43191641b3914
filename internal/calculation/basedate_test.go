package calculation

import (
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectBreak(t *testing.T) {
	ref := domain.ReferenceDates{
		DOEAF:        d("2010-01-01"),
		Reenlistment: d("2013-01-01"),
		EOS:          d("2012-12-31"),
	}
	tolerance90 := domain.BreakRule{MaxGapDays: 90, Anchor: domain.AnchorLastPeriodEnd, CheckPeriodGaps: true}

	tests := []struct {
		name      string
		periods   []domain.ServicePeriod
		ref       domain.ReferenceDates
		rule      domain.BreakRule
		wantBreak bool
		wantGap   int
	}{
		{
			name: "contiguous periods",
			periods: []domain.ServicePeriod{
				period(domain.PeriodActive, "2010-01-01", "2011-06-30"),
				period(domain.PeriodInactive, "2011-07-01", "2012-12-31"),
			},
			ref:     ref,
			rule:    tolerance90,
			wantGap: 1,
		},
		{
			name: "interior gap over tolerance",
			periods: []domain.ServicePeriod{
				period(domain.PeriodInactive, "2011-12-01", "2012-12-31"),
				period(domain.PeriodActive, "2010-01-01", "2011-06-30"),
			},
			ref:       ref,
			rule:      tolerance90,
			wantBreak: true,
			wantGap:   154,
		},
		{
			name: "interior gap ignored when disabled",
			periods: []domain.ServicePeriod{
				period(domain.PeriodActive, "2010-01-01", "2011-06-30"),
				period(domain.PeriodInactive, "2011-12-01", "2012-12-31"),
			},
			ref:     ref,
			rule:    domain.BreakRule{MaxGapDays: 90, Anchor: domain.AnchorLastPeriodEnd},
			wantGap: 1,
		},
		{
			name: "overlap is measured against the running maximum end",
			periods: []domain.ServicePeriod{
				period(domain.PeriodActive, "2010-01-01", "2012-12-31"),
				period(domain.PeriodInactive, "2011-01-01", "2011-02-01"),
			},
			ref:     ref,
			rule:    tolerance90,
			wantGap: 1,
		},
		{
			name: "next-day tolerance against EOS",
			periods: []domain.ServicePeriod{
				period(domain.PeriodActive, "2010-01-01", "2012-12-31"),
			},
			ref:     ref,
			rule:    domain.BreakRule{MaxGapDays: 1, Anchor: domain.AnchorEOS},
			wantGap: 1,
		},
		{
			name: "two days after EOS breaks the next-day tolerance",
			periods: []domain.ServicePeriod{
				period(domain.PeriodActive, "2010-01-01", "2012-12-31"),
			},
			ref: domain.ReferenceDates{
				DOEAF:        d("2010-01-01"),
				Reenlistment: d("2013-01-02"),
				EOS:          d("2012-12-31"),
			},
			rule:      domain.BreakRule{MaxGapDays: 1, Anchor: domain.AnchorEOS},
			wantBreak: true,
			wantGap:   2,
		},
		{
			name:    "no periods",
			ref:     ref,
			rule:    tolerance90,
			wantGap: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBreak(tt.periods, tt.ref, tt.rule)
			assert.Equal(t, tt.wantBreak, got.Break)
			assert.Equal(t, tt.wantGap, got.LongestGap)
			if tt.wantBreak {
				assert.NotEmpty(t, got.Reasons)
			}
		})
	}
}

func TestResolveBaseDates_FirstActiveDutyFallback(t *testing.T) {
	fad := d("2014-07-01")
	ref := domain.ReferenceDates{
		DOEAF:           d("2014-07-01"),
		Reenlistment:    d("2016-01-01"),
		EOS:             d("2018-01-01"),
		FirstActiveDuty: &fad,
	}

	base := resolveBaseDates(ref, &creditSummary{}, domain.StandardRules())

	assert.False(t, base.Break.Break)
	assert.Equal(t, fad, base.PEBD)
}

func TestResolveBaseDates_BASDShiftedByLostTime(t *testing.T) {
	ref := domain.ReferenceDates{
		DOEAF:        d("2015-01-01"),
		Reenlistment: d("2019-01-02"),
		EOS:          d("2019-01-01"),
	}
	credit := &creditSummary{
		ActiveDays: 1462,
		LostDays:   10,
		NetDays:    1452,
		Creditable: []domain.ServicePeriod{period(domain.PeriodActive, "2015-01-01", "2019-01-01")},
	}
	credit.Active = credit.Creditable

	rules := domain.StandardRules()
	rules.LostTimeShift = domain.LostShiftAlways
	base := resolveBaseDates(ref, credit, rules)

	// reenlistment less net days, then forward by the lost days
	assert.Equal(t, d("2015-01-21"), *base.BASD)
	assert.Equal(t, d("2015-01-11"), base.PEBD)
	assert.Equal(t, base.PEBD, base.ActiveServiceStart)
}
