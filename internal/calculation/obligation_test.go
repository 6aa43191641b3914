package calculation

import (
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProjectObligation(t *testing.T) {
	rule := domain.StandardRules().Obligation

	tests := []struct {
		name          string
		ref           domain.ReferenceDates
		wantYears     int
		wantExpected  string
		wantNewEOS    string
		wantShortfall bool
	}{
		{
			name: "six years before the cutoff, obligation met",
			ref: domain.ReferenceDates{
				DOEAF:        d("1983-01-01"),
				Reenlistment: d("1989-01-02"),
				EOS:          d("1989-01-01"),
			},
			wantYears:    6,
			wantExpected: "1988-12-31",
			wantNewEOS:   "1989-01-01",
		},
		{
			name: "eight years on or after the cutoff, shortfall",
			ref: domain.ReferenceDates{
				DOEAF:        d("2015-01-01"),
				Reenlistment: d("2015-01-01"),
				EOS:          d("2019-01-01"),
			},
			wantYears:     8,
			wantExpected:  "2023-01-01",
			wantNewEOS:    "2019-01-01",
			wantShortfall: true,
		},
		{
			name: "EOS exactly at the obligation end",
			ref: domain.ReferenceDates{
				DOEAF:        d("1984-06-01"),
				Reenlistment: d("1990-01-01"),
				EOS:          d("1992-06-01"),
			},
			wantYears:     8,
			wantExpected:  "1992-06-01",
			wantNewEOS:    "1992-06-01",
			wantShortfall: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectObligation(tt.ref, rule)

			assert.Equal(t, tt.wantYears, got.Years)
			assert.Equal(t, d(tt.wantExpected), got.ExpectedEOS)
			assert.Equal(t, d(tt.wantNewEOS), got.NewEOS)
			assert.Equal(t, tt.wantShortfall, got.Shortfall)
			assert.NotEmpty(t, got.Note)
		})
	}
}

func TestProjectObligation_NewEOSFromReenlistment(t *testing.T) {
	ref := domain.ReferenceDates{
		DOEAF:        d("2010-01-01"),
		Reenlistment: d("2016-01-01"),
		EOS:          d("2014-01-01"),
	}

	got := ProjectObligation(ref, domain.StandardRules().Obligation)

	assert.True(t, got.Shortfall)
	assert.Equal(t, d("2018-01-01"), got.ExpectedEOS)
	// 1461 days remain between EOS and the expected EOS
	assert.Equal(t, d("2020-01-01"), got.NewEOS)
}
