package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// CalculationEngine computes baseline dates, credit totals and retirement points.
// It holds no state between calls besides its logger.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compute runs one computation. Any invalid input aborts it before totals are
// produced; no partial result is returned.
func (ce *CalculationEngine) Compute(input *domain.ComputationInput, rules domain.RuleConfiguration) (*domain.ComputationResult, error) {
	if input == nil {
		return nil, domain.NewComputationError(domain.KindInvalidInput, "input", "", "input is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rule set %q: %w", rules.Name, err)
	}

	ref, err := normalizeReference(input.Reference)
	if err != nil {
		return nil, err
	}
	normalized := *input
	normalized.Reference = ref

	ce.Logger.Debugf("computing under rule set %q: %d periods, DOEAF %s, reenlistment %s, EOS %s",
		rules.Name, input.Registry.Len(), dateutil.Format(ref.DOEAF), dateutil.Format(ref.Reenlistment), dateutil.Format(ref.EOS))

	credit, err := evaluateCredit(&normalized, rules)
	if err != nil {
		ce.Logger.Errorf("credit evaluation failed: %v", err)
		return nil, err
	}
	ce.Logger.Debugf("credit: active=%d inactive=%d dep=%d lost=%d constructive=%d net=%d",
		credit.ActiveDays, credit.InactiveDays, credit.DEPDays, credit.LostDays, credit.ConstructiveDays, credit.NetDays)

	base := resolveBaseDates(ref, credit, rules)
	if base.Break.Break {
		ce.Logger.Infof("break in service detected (longest gap %d days)", base.Break.LongestGap)
	}

	points := RetirementPoints(ref.DOEAF, credit.Inactive, rules.Points)
	obligation := ProjectObligation(ref, rules.Obligation)

	creditable, err := dateutil.Breakdown(credit.NetDays, rules.YearLength, rules.DurationLeapAdjust)
	if err != nil {
		return nil, fmt.Errorf("creditable service breakdown: %w", err)
	}

	result := &domain.ComputationResult{
		RuleSet:                 rules.Name,
		TotalActiveDays:         credit.ActiveDays,
		TotalInactiveDays:       credit.InactiveDays,
		TotalLostDays:           credit.LostDays,
		DEPCreditDays:           credit.DEPDays,
		ConstructiveDays:        credit.ConstructiveDays,
		NetServiceDays:          credit.NetDays,
		CreditableService:       creditable,
		PEBD:                    base.PEBD,
		BASD:                    base.BASD,
		AFADBD:                  base.AFADBD,
		ActiveServiceStart:      &base.ActiveServiceStart,
		BreakInService:          base.Break.Break,
		ActivePoints:            credit.ActiveDays,
		ExpectedObligationYears: obligation.Years,
		ExpectedEOS:             obligation.ExpectedEOS,
		NewEOS:                  obligation.NewEOS,
		ObligationShortfall:     obligation.Shortfall,
		Periods:                 credit.Statuses,
	}

	result.RetirementPointsByAnniversaryYear = points
	for _, ap := range points {
		result.ReservePoints += ap.Points
	}
	result.TotalRetirementPoints = result.ActivePoints + result.ReservePoints

	result.Notes = append(result.Notes, credit.Notes...)
	if input.ConstructiveServiceYears > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("%d constructive service years credited as %d days",
			input.ConstructiveServiceYears, credit.ConstructiveDays))
	}
	result.Notes = append(result.Notes, base.Notes...)
	result.Notes = append(result.Notes, obligation.Note)
	for _, w := range referenceWarnings(ref) {
		ce.Logger.Warnf("%s", w)
		result.Notes = append(result.Notes, w)
	}
	ce.Logger.Infof("rule set %q: PEBD %s, net service %s", rules.Name, dateutil.Format(result.PEBD), creditable)
	return result, nil
}

// normalizeReference strips time-of-day and checks the reference date ordering.
func normalizeReference(ref domain.ReferenceDates) (domain.ReferenceDates, error) {
	for _, r := range []struct {
		field string
		date  time.Time
	}{
		{"reference_dates.doeaf", ref.DOEAF},
		{"reference_dates.reenlistment", ref.Reenlistment},
		{"reference_dates.eos", ref.EOS},
	} {
		if r.date.IsZero() {
			return ref, domain.NewComputationError(domain.KindInvalidInput, r.field, "", "date is required")
		}
	}

	out := domain.ReferenceDates{
		DOEAF:        dateutil.Normalize(ref.DOEAF),
		Reenlistment: dateutil.Normalize(ref.Reenlistment),
		EOS:          dateutil.Normalize(ref.EOS),
	}
	if ref.FirstActiveDuty != nil {
		fad := dateutil.Normalize(*ref.FirstActiveDuty)
		out.FirstActiveDuty = &fad
	}

	if out.Reenlistment.Before(out.DOEAF) {
		return ref, domain.NewComputationError(domain.KindInvalidOrdering, "reference_dates.reenlistment",
			dateutil.Format(out.Reenlistment), "precedes DOEAF "+dateutil.Format(out.DOEAF))
	}
	return out, nil
}

// referenceWarnings flags reference dates that are valid but worth a second look.
func referenceWarnings(ref domain.ReferenceDates) []string {
	var warnings []string
	if ref.EOS.Before(ref.Reenlistment) {
		warnings = append(warnings, fmt.Sprintf("EOS %s precedes reenlistment %s",
			dateutil.Format(ref.EOS), dateutil.Format(ref.Reenlistment)))
	}
	if ref.Reenlistment.Month() == time.February && ref.Reenlistment.Day() == 29 {
		warnings = append(warnings, "reenlistment on February 29: longevity increases begin on March 1 in common years and February 29 in leap years")
	}
	return warnings
}
