package domain

import (
	"time"

	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// ReferenceDates are the member-level dates every computation is anchored on.
type ReferenceDates struct {
	DOEAF        time.Time
	Reenlistment time.Time
	EOS          time.Time
	// FirstActiveDuty is the designated first day of active duty, used as the
	// continuous-service baseline when no creditable period exists.
	FirstActiveDuty *time.Time
}

// ComputationInput bundles everything a computation consumes besides the rules.
type ComputationInput struct {
	Reference                ReferenceDates
	Registry                 *Registry
	ConstructiveServiceYears int
}

// Clone returns a deep copy so transforms never alias the caller's registry.
func (in *ComputationInput) Clone() *ComputationInput {
	clone := *in
	clone.Registry = in.Registry.Clone()
	if in.Reference.FirstActiveDuty != nil {
		fad := *in.Reference.FirstActiveDuty
		clone.Reference.FirstActiveDuty = &fad
	}
	return &clone
}

// CreditStatus is the per-period outcome of the credit rules.
type CreditStatus struct {
	Kind         PeriodKind
	Start        time.Time
	End          *time.Time
	EffectiveEnd *time.Time
	Days         int
	Creditable   bool
	Reason       string
	Duration     dateutil.Duration
}

// AnniversaryPoints is the reserve point total of one DOEAF anniversary year.
type AnniversaryPoints struct {
	Span             string
	WindowStart      time.Time
	Days             int
	DrillPoints      int
	MembershipPoints int
	Points           int
}

// ComputationResult is the complete output of one computation.
type ComputationResult struct {
	RuleSet string

	TotalActiveDays   int
	TotalInactiveDays int
	TotalLostDays     int
	DEPCreditDays     int
	ConstructiveDays  int
	NetServiceDays    int
	CreditableService dateutil.Duration

	PEBD               time.Time
	BASD               *time.Time
	AFADBD             *time.Time
	ActiveServiceStart *time.Time
	BreakInService     bool

	// RetirementPointsByAnniversaryYear is ordered by window start.
	RetirementPointsByAnniversaryYear []AnniversaryPoints
	ActivePoints                      int
	ReservePoints                     int
	TotalRetirementPoints             int

	ExpectedObligationYears int
	ExpectedEOS             time.Time
	NewEOS                  time.Time
	ObligationShortfall     bool

	Periods []CreditStatus
	Notes   []string
}

// PointsFor returns the points recorded for an anniversary span such as "2015-2016".
func (r *ComputationResult) PointsFor(span string) (int, bool) {
	for _, ap := range r.RetirementPointsByAnniversaryYear {
		if ap.Span == span {
			return ap.Points, true
		}
	}
	return 0, false
}
