package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per result).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ComputationResult) ([]byte, error) {
	r := NewReport(result)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"RuleSet", "PEBD", "BASD", "AFADBD", "BreakInService", "NetServiceDays", "CreditableService",
		"ActiveDays", "InactiveDays", "LostDays", "DEPCreditDays", "ConstructiveDays", "TotalRetirementPoints",
		"ExpectedEOS", "NewEOS", "ObligationShortfall"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		r.RuleSet,
		r.PEBD,
		r.BASD,
		r.AFADBD,
		strconv.FormatBool(r.BreakInService),
		strconv.Itoa(r.Totals.NetServiceDays),
		r.CreditableService,
		strconv.Itoa(r.Totals.ActiveDays),
		strconv.Itoa(r.Totals.InactiveDays),
		strconv.Itoa(r.Totals.LostDays),
		strconv.Itoa(r.Totals.DEPCreditDays),
		strconv.Itoa(r.Totals.ConstructiveDays),
		strconv.Itoa(r.RetirementPoints.Total),
		r.Obligation.ExpectedEOS,
		r.Obligation.NewEOS,
		strconv.FormatBool(r.Obligation.Shortfall),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// PeriodsCSVFormatter writes one row per input period with its credit status.
type PeriodsCSVFormatter struct{}

func (p PeriodsCSVFormatter) Name() string { return "periods-csv" }

func (p PeriodsCSVFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Kind", "Start", "End", "EffectiveEnd", "Days", "Duration", "Status", "Reason"}); err != nil {
		return nil, err
	}
	for _, period := range NewReport(result).Periods {
		status := "NOT CREDITABLE"
		if period.Creditable {
			status = "CREDITABLE"
		}
		row := []string{
			period.Kind,
			period.Start,
			period.End,
			period.EffectiveEnd,
			strconv.Itoa(period.Days),
			period.Duration,
			status,
			period.Reason,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
