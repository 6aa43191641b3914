package calculation

import (
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDEPCreditable(t *testing.T) {
	policy := domain.StandardRules().DEPCredit

	tests := []struct {
		name  string
		start string
		idt   bool
		want  bool
	}{
		{"before 1985 always creditable", "1984-06-01", false, true},
		{"between cutoffs never creditable", "1987-01-01", true, false},
		{"between cutoffs without IDT", "1987-01-01", false, false},
		{"after 1989 with IDT", "1990-01-01", true, true},
		{"after 1989 without IDT", "1990-01-01", false, false},
		{"on the IDT cutoff with IDT", "1989-11-29", true, true},
		{"day before the IDT cutoff", "1989-11-28", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := period(domain.PeriodDEP, tt.start, tt.start)
			p.IDTPerformed = tt.idt

			got, reason := DEPCreditable(p, policy)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestDEPCreditable_DisabledCutoffs(t *testing.T) {
	p := period(domain.PeriodDEP, "1980-01-01", "1980-03-01")
	p.IDTPerformed = true

	got, _ := DEPCreditable(p, domain.DEPCreditPolicy{})
	assert.False(t, got, "no cutoffs means DEP is never creditable")
}

func TestEvaluateCredit_NetServiceDays(t *testing.T) {
	dep := period(domain.PeriodDEP, "1984-01-01", "1984-01-31")
	input := newInput(t, "1984-02-01", "1986-02-01", "1988-01-31",
		dep,
		period(domain.PeriodActive, "1984-02-01", "1985-01-31"),
		period(domain.PeriodInactive, "1985-02-01", "1985-02-28"),
		period(domain.PeriodLostTime, "1984-05-01", "1984-05-05"))
	input.ConstructiveServiceYears = 1

	summary, err := evaluateCredit(input, domain.StandardRules())
	require.NoError(t, err)

	assert.Equal(t, 31, summary.DEPDays)
	assert.Equal(t, 366, summary.ActiveDays)
	assert.Equal(t, 28, summary.InactiveDays)
	assert.Equal(t, 5, summary.LostDays)
	assert.Equal(t, 365, summary.ConstructiveDays)
	assert.Equal(t, 31+366+28-5+365, summary.NetDays)

	require.Len(t, summary.Statuses, 4)
	assert.Equal(t, domain.PeriodDEP, summary.Statuses[0].Kind)
	assert.True(t, summary.Statuses[0].Creditable)
	assert.False(t, summary.Statuses[3].Creditable, "lost time is never creditable")
	assert.Len(t, summary.Creditable, 3)
	assert.True(t, summary.HasInactive())
}

func TestEvaluateCredit_ThirtyDayMonth(t *testing.T) {
	rules := domain.StandardRules()
	rules.DayCount.Convention = "thirty_day_month"

	input := newInput(t, "2019-01-01", "2019-01-01", "2020-01-01",
		period(domain.PeriodLostTime, "2019-01-01", "2019-01-31"))

	summary, err := evaluateCredit(input, rules)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.LostDays)
}

func TestEvaluateCredit_NegativeExplicitPoints(t *testing.T) {
	p := period(domain.PeriodInactive, "2016-01-01", "2016-01-31")
	p.ExplicitPoints = intPtr(-3)
	input := newInput(t, "2015-01-01", "2015-01-01", "2019-01-01", p)

	summary, err := evaluateCredit(input, domain.StandardRules())

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvaluateCredit_ExcludedPeriodStillChecksPoints(t *testing.T) {
	tests := []struct {
		name     string
		end      string
		points   int
		wantKind domain.ErrorKind
	}{
		{"negative on an open period", "", -5, domain.KindInvalidInput},
		{"negative on a closed period", "2020-01-31", -1, domain.KindInvalidInput},
		{"exceeds the written span", "2020-01-31", 32, domain.KindPointsExceedPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inactive := period(domain.PeriodInactive, "2020-01-01", tt.end)
			inactive.ExplicitPoints = intPtr(tt.points)
			input := newInput(t, "2015-01-01", "2015-01-01", "2019-01-01", inactive)

			_, err := evaluateCredit(input, domain.StandardRules())
			require.Error(t, err)

			var ce *domain.ComputationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, "periods.inactive[0].explicit_points", ce.Field)
		})
	}
}

func TestEvaluateCredit_OpenPeriodAfterEOSKeepsBothNotes(t *testing.T) {
	inactive := period(domain.PeriodInactive, "2020-01-01", "")
	inactive.ExplicitPoints = intPtr(10)
	input := newInput(t, "2015-01-01", "2015-01-01", "2019-01-01", inactive)

	summary, err := evaluateCredit(input, domain.StandardRules())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.InactiveDays)
	assertNoteContains(t, summary.Notes, "open-ended; end resolved to EOS 2019-01-01")
	assertNoteContains(t, summary.Notes, "begins after EOS 2019-01-01 and is excluded")
}
