package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `
rule_set: standard
constructive_service_years: 1
reference_dates:
  doeaf: 2015-01-01
  reenlistment: "2015-01-01"
  eos: 2019-01-01
periods:
  - kind: active
    start: 2015-01-01
    end: 2019-01-01
  - kind: dep
    start: 2014-06-01
    end: 2014-12-31
    idt_performed: true
  - kind: inactive
    start: 2019-01-02
    explicit_points: 20
`

func TestInputParser_Parse(t *testing.T) {
	parser := NewInputParser()

	doc, err := parser.Parse([]byte(validDocument))
	require.NoError(t, err)

	assert.Equal(t, "standard", doc.RuleSet)
	assert.Equal(t, 1, doc.ConstructiveServiceYears)
	assert.Equal(t, "2015-01-01", doc.ReferenceDates.DOEAF, "unquoted dates decode as strings")
	require.Len(t, doc.Periods, 3)
	assert.True(t, doc.Periods[1].IDTPerformed)
	require.NotNil(t, doc.Periods[2].ExplicitPoints)
	assert.Equal(t, 20, *doc.Periods[2].ExplicitPoints)

	input, err := parser.BuildInput(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, input.Registry.Len())
	assert.Equal(t, dateutil.MustParseDate("2019-01-01"), input.Reference.EOS)
	assert.True(t, input.Registry.Periods(domain.PeriodInactive)[0].IsOpen())
}

func TestInputParser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		sentinel  error
		wantField string
	}{
		{
			name: "malformed date",
			yaml: `
reference_dates: {doeaf: 2015-13-01, reenlistment: 2015-01-01, eos: 2019-01-01}
`,
			sentinel:  domain.ErrInvalidDate,
			wantField: "reference_dates.doeaf",
		},
		{
			name: "missing EOS",
			yaml: `
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01}
`,
			sentinel:  domain.ErrInvalidInput,
			wantField: "reference_dates.eos",
		},
		{
			name: "unknown period kind",
			yaml: `
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
periods:
  - {kind: sabbatical, start: 2015-01-01, end: 2015-02-01}
`,
			sentinel:  domain.ErrInvalidInput,
			wantField: "periods[0].kind",
		},
		{
			name: "bad period end",
			yaml: `
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
periods:
  - {kind: active, start: 2015-01-01}
  - {kind: active, start: 2016-01-01, end: 2016-02-30}
`,
			sentinel:  domain.ErrInvalidDate,
			wantField: "periods[1].end",
		},
		{
			name: "negative constructive years",
			yaml: `
constructive_service_years: -2
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
`,
			sentinel:  domain.ErrInvalidInput,
			wantField: "constructive_service_years",
		},
		{
			name: "negative explicit points",
			yaml: `
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
periods:
  - {kind: inactive, start: 2015-01-01, end: 2015-02-01, explicit_points: -1}
`,
			sentinel:  domain.ErrInvalidInput,
			wantField: "periods[0].explicit_points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var ce *domain.ComputationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestInputParser_RejectsUnknownFields(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(`
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
reenlist_date: 2015-01-01
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reenlist_date")
}

func TestInputParser_EmptyDocument(t *testing.T) {
	_, err := NewInputParser().Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestInputParser_BuildInputInvertedRange(t *testing.T) {
	parser := NewInputParser()
	doc, err := parser.Parse([]byte(`
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
periods:
  - {kind: active, start: 2016-01-01, end: 2015-01-01}
`))
	require.NoError(t, err, "structural checks pass")

	_, err = parser.BuildInput(doc)
	assert.ErrorIs(t, err, domain.ErrInvertedRange)
}

func TestInputParser_ResolveRules(t *testing.T) {
	parser := NewInputParser()

	t.Run("default preset", func(t *testing.T) {
		doc := &InputDocument{}
		rules, err := parser.ResolveRules(doc)
		require.NoError(t, err)
		assert.Equal(t, "standard", rules.Name)
	})

	t.Run("inline overrides", func(t *testing.T) {
		doc, err := parser.Parse([]byte(`
rule_set: pebd-v2.1
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
rules:
  break_in_service:
    max_gap_days: 30
  year_length: 360
`))
		require.NoError(t, err)

		rules, err := parser.ResolveRules(doc)
		require.NoError(t, err)
		assert.Equal(t, "pebd-v2.1+overrides", rules.Name)
		assert.Equal(t, 30, rules.BreakInService.MaxGapDays)
		assert.Equal(t, domain.AnchorLastPeriodEnd, rules.BreakInService.Anchor, "untouched fields keep the preset value")
		assert.Equal(t, 360, rules.YearLength)
	})

	t.Run("invalid override", func(t *testing.T) {
		doc, err := parser.Parse([]byte(`
reference_dates: {doeaf: 2015-01-01, reenlistment: 2015-01-01, eos: 2019-01-01}
rules:
  pebd_method: guess
`))
		require.NoError(t, err)

		_, err = parser.ResolveRules(doc)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := parser.ResolveRules(&InputDocument{RuleSet: "navy-1972"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "dodfmr-vol7a")
	})
}

func TestInputParser_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "member.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o600))

	input, rules, err := NewInputParser().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "standard", rules.Name)
	assert.Equal(t, 1, input.ConstructiveServiceYears)

	_, _, err = NewInputParser().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestWriteExample_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExample(&buf))
	assert.Contains(t, buf.String(), "# pebdcalc input document")
	assert.NotContains(t, buf.String(), "rules:")

	parser := NewInputParser()
	doc, err := parser.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ExampleDocument().Periods, doc.Periods)

	_, err = parser.BuildInput(doc)
	require.NoError(t, err)
}
