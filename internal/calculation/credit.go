package calculation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// periodCredit is one period after EOS resolution and credit classification.
type periodCredit struct {
	effective domain.ServicePeriod
	credited  int
	excluded  bool
	status    domain.CreditStatus
}

// creditSummary holds the credit totals of one computation.
type creditSummary struct {
	ActiveDays       int
	InactiveDays     int
	LostDays         int
	DEPDays          int
	ConstructiveDays int
	NetDays          int

	// Creditable are the effective active, inactive and creditable DEP periods.
	Creditable []domain.ServicePeriod
	Active     []domain.ServicePeriod
	Inactive   []domain.ServicePeriod

	Statuses []domain.CreditStatus
	Notes    []string
}

// HasInactive reports whether any inactive period contributed.
func (cs *creditSummary) HasInactive() bool {
	return len(cs.Inactive) > 0
}

// DEPCreditable applies the historical DEP cutoffs to a period start.
func DEPCreditable(p domain.ServicePeriod, policy domain.DEPCreditPolicy) (bool, string) {
	if policy.AlwaysBefore != nil && p.Start.Before(*policy.AlwaysBefore) {
		return true, fmt.Sprintf("DEP before %s is creditable", dateutil.Format(*policy.AlwaysBefore))
	}
	if policy.IDTFrom != nil && !p.Start.Before(*policy.IDTFrom) {
		if p.IDTPerformed {
			return true, fmt.Sprintf("DEP on or after %s with IDT performed is creditable", dateutil.Format(*policy.IDTFrom))
		}
		return false, fmt.Sprintf("DEP on or after %s without IDT is not creditable", dateutil.Format(*policy.IDTFrom))
	}
	return false, "DEP outside the creditable windows is not creditable"
}

// evaluateCredit classifies every period and computes net creditable days.
// Every period is validated before any total is accumulated.
func evaluateCredit(input *domain.ComputationInput, rules domain.RuleConfiguration) (*creditSummary, error) {
	if input.ConstructiveServiceYears < 0 {
		return nil, domain.NewComputationError(domain.KindInvalidInput, "constructive_service_years",
			strconv.Itoa(input.ConstructiveServiceYears), "must not be negative")
	}

	eos := input.Reference.EOS
	var credits []periodCredit
	var notes []string
	for _, kind := range domain.PeriodKinds {
		for i, p := range input.Registry.Periods(kind) {
			pc, periodNotes, err := classify(p, fmt.Sprintf("periods.%s[%d]", kind, i), eos, rules)
			if err != nil {
				return nil, err
			}
			notes = append(notes, periodNotes...)
			credits = append(credits, pc)
		}
	}

	summary := &creditSummary{Notes: notes}
	for _, pc := range credits {
		summary.Statuses = append(summary.Statuses, pc.status)
		if pc.excluded {
			continue
		}
		switch pc.effective.Kind {
		case domain.PeriodActive:
			summary.ActiveDays += pc.credited
			summary.Active = append(summary.Active, pc.effective)
			summary.Creditable = append(summary.Creditable, pc.effective)
		case domain.PeriodInactive:
			summary.InactiveDays += pc.credited
			summary.Inactive = append(summary.Inactive, pc.effective)
			summary.Creditable = append(summary.Creditable, pc.effective)
		case domain.PeriodDEP:
			if pc.status.Creditable {
				summary.DEPDays += pc.credited
				summary.Creditable = append(summary.Creditable, pc.effective)
			}
		case domain.PeriodLostTime:
			summary.LostDays += pc.credited
		}
	}

	summary.ConstructiveDays = input.ConstructiveServiceYears * rules.YearLength
	summary.NetDays = summary.ActiveDays + summary.InactiveDays + summary.DEPDays -
		summary.LostDays + summary.ConstructiveDays
	return summary, nil
}

// classify resolves the effective bounds of one period and its credit. It
// returns one note per adjustment made to the period.
func classify(p domain.ServicePeriod, field string, eos time.Time, rules domain.RuleConfiguration) (periodCredit, []string, error) {
	pc := periodCredit{effective: p}
	pc.status = domain.CreditStatus{Kind: p.Kind, Start: p.Start, End: p.End}
	var notes []string

	switch {
	case p.Kind == domain.PeriodDEP:
		if p.IsOpen() {
			return pc, nil, domain.NewComputationError(domain.KindInvalidInput, field+".end", "", "DEP periods must be closed")
		}
	case p.IsOpen():
		pc.effective, _ = domain.CapEnd(p, eos)
		notes = append(notes, fmt.Sprintf("%s period starting %s is open-ended; end resolved to EOS %s",
			p.Kind.Label(), dateutil.Format(p.Start), dateutil.Format(eos)))
	case rules.CapAtEOS:
		var capped bool
		if pc.effective, capped = domain.CapEnd(p, eos); capped {
			notes = append(notes, fmt.Sprintf("%s period %s..%s capped at EOS %s",
				p.Kind.Label(), dateutil.Format(p.Start), dateutil.Format(*p.End), dateutil.Format(eos)))
		}
	}
	pc.status.EffectiveEnd = pc.effective.End

	if pc.effective.End.Before(pc.effective.Start) {
		// points are checked against the period as written
		span := -1
		if !p.IsOpen() {
			raw, err := p.Days(rules.DayCount)
			if err != nil {
				return pc, nil, fmt.Errorf("counting %s: %w", field, err)
			}
			span = raw
		}
		if err := checkExplicitPoints(p, field, span); err != nil {
			return pc, nil, err
		}
		pc.excluded = true
		pc.status.Reason = "starts after EOS"
		notes = append(notes, fmt.Sprintf("%s period starting %s begins after EOS %s and is excluded",
			p.Kind.Label(), dateutil.Format(p.Start), dateutil.Format(eos)))
		return pc, notes, nil
	}

	days, err := pc.effective.Days(rules.DayCount)
	if err != nil {
		return pc, nil, fmt.Errorf("counting %s: %w", field, err)
	}
	if err := checkExplicitPoints(p, field, days); err != nil {
		return pc, nil, err
	}
	pc.credited = days
	pc.status.Days = days
	pc.status.Duration = dateutil.CalendarDuration(pc.effective.Start, *pc.effective.End)

	switch p.Kind {
	case domain.PeriodActive:
		pc.status.Creditable = true
		pc.status.Reason = "active duty"
	case domain.PeriodInactive:
		pc.status.Creditable = true
		pc.status.Reason = "inactive service by date span"
		if p.ExplicitPoints != nil && rules.InactiveCredit == domain.InactiveExplicitPoints {
			pts := *p.ExplicitPoints
			pc.credited = pts
			pc.status.Days = pts
			pc.status.Reason = fmt.Sprintf("inactive service by %d certified points", pts)
		}
	case domain.PeriodDEP:
		pc.status.Creditable, pc.status.Reason = DEPCreditable(p, rules.DEPCredit)
		notes = append(notes, fmt.Sprintf("DEP period %s..%s: %s", dateutil.Format(p.Start), dateutil.Format(*p.End), pc.status.Reason))
	case domain.PeriodLostTime:
		pc.status.Reason = "lost time is deducted"
	}
	return pc, notes, nil
}

// checkExplicitPoints rejects negative points and points above span days on an
// inactive period. A negative span skips the upper bound.
func checkExplicitPoints(p domain.ServicePeriod, field string, span int) error {
	if p.Kind != domain.PeriodInactive || p.ExplicitPoints == nil {
		return nil
	}
	pts := *p.ExplicitPoints
	if pts < 0 {
		return domain.NewComputationError(domain.KindInvalidInput, field+".explicit_points",
			strconv.Itoa(pts), "must not be negative")
	}
	if span >= 0 && pts > span {
		return domain.NewComputationError(domain.KindPointsExceedPeriod, field+".explicit_points",
			strconv.Itoa(pts), fmt.Sprintf("period spans only %d days", span))
	}
	return nil
}
