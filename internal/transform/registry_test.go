package transform

import (
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	assert.Equal(t, []string{
		"add_constructive_years",
		"add_period",
		"drop_kind",
		"reenlist_after_eos",
		"set_eos",
		"set_idt",
		"set_reenlistment",
	}, NewTransformRegistry().List())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		want    InputTransform
		wantErr string
	}{
		{spec: "set_reenlistment:date=2020-02-29", want: &SetReenlistment{Date: dateutil.MustParseDate("2020-02-29")}},
		{spec: "set_eos: date = 2021-06-30", want: &SetEOS{Date: dateutil.MustParseDate("2021-06-30")}},
		{spec: "reenlist_after_eos:days=91", want: &ReenlistAfterEOS{Days: 91}},
		{spec: "add_constructive_years:years=3", want: &AddConstructiveYears{Years: 3}},
		{spec: "set_idt:", want: &SetIDT{Index: AllPeriods, Performed: true}},
		{spec: "set_idt:index=1,performed=false", want: &SetIDT{Index: 1, Performed: false}},
		{spec: "drop_kind:kind=lost", want: &DropKind{Kind: domain.PeriodLostTime}},
		{spec: "set_eos", wantErr: "expected 'name:params'"},
		{spec: "set_eos:2021-06-30", wantErr: "expected 'key=value'"},
		{spec: "set_eos:when=2021-06-30", wantErr: "requires 'date' parameter"},
		{spec: "set_eos:date=06/30/2021", wantErr: "expected YYYY-MM-DD"},
		{spec: "reenlist_after_eos:days=soon", wantErr: "invalid days value"},
		{spec: "set_idt:performed=maybe", wantErr: "invalid performed value"},
		{spec: "drop_kind:kind=sabbatical", wantErr: "unknown period kind"},
		{spec: "promote:grade=E5", wantErr: "unknown transform: promote"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformRegistry_AddPeriodSpec(t *testing.T) {
	registry := NewTransformRegistry()

	got, err := registry.ParseTransformSpec("add_period:kind=active,start=2020-01-01,end=2020-12-31")
	require.NoError(t, err)
	ap, ok := got.(*AddPeriod)
	require.True(t, ok)
	assert.Equal(t, domain.PeriodActive, ap.Period.Kind)
	require.NotNil(t, ap.Period.End)
	assert.Equal(t, dateutil.MustParseDate("2020-12-31"), *ap.Period.End)

	open, err := registry.ParseTransformSpec("add_period:kind=inactive,start=2021-01-01")
	require.NoError(t, err)
	assert.True(t, open.(*AddPeriod).Period.IsOpen())

	_, err = registry.ParseTransformSpec("add_period:kind=active,start=2020-12-31,end=2020-01-01")
	assert.ErrorIs(t, err, domain.ErrInvertedRange)
}

func TestTransformRegistry_ParseTransformSpecs(t *testing.T) {
	registry := NewTransformRegistry()

	got, err := registry.ParseTransformSpecs([]string{"set_idt:", "drop_kind:kind=dep"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "set_idt", got[0].Name())
	assert.Equal(t, "drop_kind", got[1].Name())

	_, err = registry.ParseTransformSpecs([]string{"set_idt:", "bogus"})
	assert.Error(t, err)
}
