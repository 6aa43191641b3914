package output

import (
	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// Report is the serialized form of a ComputationResult. Dates are ISO strings
// and durations use the canonical "NN Years, NN Months, NN Days" form.
type Report struct {
	RuleSet            string           `json:"rule_set" yaml:"rule_set"`
	PEBD               string           `json:"pebd" yaml:"pebd"`
	BASD               string           `json:"basd,omitempty" yaml:"basd,omitempty"`
	AFADBD             string           `json:"afadbd,omitempty" yaml:"afadbd,omitempty"`
	ActiveServiceStart string           `json:"active_service_start,omitempty" yaml:"active_service_start,omitempty"`
	BreakInService     bool             `json:"break_in_service" yaml:"break_in_service"`
	CreditableService  string           `json:"creditable_service" yaml:"creditable_service"`
	Totals             ReportTotals     `json:"totals" yaml:"totals"`
	RetirementPoints   ReportPoints     `json:"retirement_points" yaml:"retirement_points"`
	Obligation         ReportObligation `json:"obligation" yaml:"obligation"`
	Periods            []ReportPeriod   `json:"periods" yaml:"periods"`
	Notes              []string         `json:"notes" yaml:"notes"`
}

// ReportTotals are the day totals by category.
type ReportTotals struct {
	ActiveDays       int `json:"active_days" yaml:"active_days"`
	InactiveDays     int `json:"inactive_days" yaml:"inactive_days"`
	LostDays         int `json:"lost_days" yaml:"lost_days"`
	DEPCreditDays    int `json:"dep_credit_days" yaml:"dep_credit_days"`
	ConstructiveDays int `json:"constructive_days" yaml:"constructive_days"`
	NetServiceDays   int `json:"net_service_days" yaml:"net_service_days"`
}

// ReportPoints carries the retirement point totals.
type ReportPoints struct {
	Active            int                 `json:"active" yaml:"active"`
	Reserve           int                 `json:"reserve" yaml:"reserve"`
	Total             int                 `json:"total" yaml:"total"`
	ByAnniversaryYear []ReportAnniversary `json:"by_anniversary_year" yaml:"by_anniversary_year"`
}

type ReportAnniversary struct {
	Span             string `json:"span" yaml:"span"`
	WindowStart      string `json:"window_start" yaml:"window_start"`
	Days             int    `json:"days" yaml:"days"`
	DrillPoints      int    `json:"drill_points" yaml:"drill_points"`
	MembershipPoints int    `json:"membership_points" yaml:"membership_points"`
	Points           int    `json:"points" yaml:"points"`
}

type ReportObligation struct {
	ExpectedYears int    `json:"expected_years" yaml:"expected_years"`
	ExpectedEOS   string `json:"expected_eos" yaml:"expected_eos"`
	NewEOS        string `json:"new_eos" yaml:"new_eos"`
	Shortfall     bool   `json:"shortfall" yaml:"shortfall"`
}

// ReportPeriod is the credit status of one input period.
type ReportPeriod struct {
	Kind         string `json:"kind" yaml:"kind"`
	Start        string `json:"start" yaml:"start"`
	End          string `json:"end,omitempty" yaml:"end,omitempty"`
	EffectiveEnd string `json:"effective_end,omitempty" yaml:"effective_end,omitempty"`
	Days         int    `json:"days" yaml:"days"`
	Duration     string `json:"duration" yaml:"duration"`
	Creditable   bool   `json:"creditable" yaml:"creditable"`
	Reason       string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// NewReport converts a computation result to its serialized form.
func NewReport(result *domain.ComputationResult) Report {
	r := Report{
		RuleSet:            result.RuleSet,
		PEBD:               dateutil.Format(result.PEBD),
		BASD:               dateutil.FormatPtr(result.BASD),
		AFADBD:             dateutil.FormatPtr(result.AFADBD),
		ActiveServiceStart: dateutil.FormatPtr(result.ActiveServiceStart),
		BreakInService:     result.BreakInService,
		CreditableService:  result.CreditableService.String(),
		Totals: ReportTotals{
			ActiveDays:       result.TotalActiveDays,
			InactiveDays:     result.TotalInactiveDays,
			LostDays:         result.TotalLostDays,
			DEPCreditDays:    result.DEPCreditDays,
			ConstructiveDays: result.ConstructiveDays,
			NetServiceDays:   result.NetServiceDays,
		},
		RetirementPoints: ReportPoints{
			Active:            result.ActivePoints,
			Reserve:           result.ReservePoints,
			Total:             result.TotalRetirementPoints,
			ByAnniversaryYear: make([]ReportAnniversary, 0, len(result.RetirementPointsByAnniversaryYear)),
		},
		Obligation: ReportObligation{
			ExpectedYears: result.ExpectedObligationYears,
			ExpectedEOS:   dateutil.Format(result.ExpectedEOS),
			NewEOS:        dateutil.Format(result.NewEOS),
			Shortfall:     result.ObligationShortfall,
		},
		Periods: make([]ReportPeriod, 0, len(result.Periods)),
		Notes:   append([]string{}, result.Notes...),
	}

	for _, ap := range result.RetirementPointsByAnniversaryYear {
		r.RetirementPoints.ByAnniversaryYear = append(r.RetirementPoints.ByAnniversaryYear, ReportAnniversary{
			Span:             ap.Span,
			WindowStart:      dateutil.Format(ap.WindowStart),
			Days:             ap.Days,
			DrillPoints:      ap.DrillPoints,
			MembershipPoints: ap.MembershipPoints,
			Points:           ap.Points,
		})
	}

	for _, p := range result.Periods {
		r.Periods = append(r.Periods, ReportPeriod{
			Kind:         string(p.Kind),
			Start:        dateutil.Format(p.Start),
			End:          dateutil.FormatPtr(p.End),
			EffectiveEnd: dateutil.FormatPtr(p.EffectiveEnd),
			Days:         p.Days,
			Duration:     p.Duration.String(),
			Creditable:   p.Creditable,
			Reason:       p.Reason,
		})
	}

	return r
}
