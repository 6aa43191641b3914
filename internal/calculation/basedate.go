package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// BreakResult is the outcome of the break-in-service test.
type BreakResult struct {
	Break bool
	// LongestGap is the largest gap seen, in days.
	LongestGap int
	Reasons    []string
}

// DetectBreak merges the creditable periods in start order and flags a break
// when an interior gap or the gap to reenlistment exceeds the rule's tolerance.
func DetectBreak(periods []domain.ServicePeriod, ref domain.ReferenceDates, rule domain.BreakRule) BreakResult {
	sorted := make([]domain.ServicePeriod, 0, len(periods))
	for _, p := range periods {
		if p.End != nil {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(*sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var res BreakResult
	flag := func(gap int, format string, args ...any) {
		if gap > res.LongestGap {
			res.LongestGap = gap
		}
		if gap > rule.MaxGapDays {
			res.Break = true
			res.Reasons = append(res.Reasons, fmt.Sprintf(format, args...))
		}
	}

	var maxEnd time.Time
	for i, p := range sorted {
		if i > 0 && rule.CheckPeriodGaps {
			gap := dateutil.DaysBetween(maxEnd, p.Start)
			flag(gap, "gap of %d days between %s and %s exceeds %d days",
				gap, dateutil.Format(maxEnd), dateutil.Format(p.Start), rule.MaxGapDays)
		}
		if i == 0 || p.End.After(maxEnd) {
			maxEnd = *p.End
		}
	}

	switch rule.Anchor {
	case domain.AnchorEOS:
		gap := dateutil.DaysBetween(ref.EOS, ref.Reenlistment)
		flag(gap, "reenlistment %s is %d days after EOS %s, more than %d days",
			dateutil.Format(ref.Reenlistment), gap, dateutil.Format(ref.EOS), rule.MaxGapDays)
	default:
		if len(sorted) > 0 {
			gap := dateutil.DaysBetween(maxEnd, ref.Reenlistment)
			flag(gap, "reenlistment %s is %d days after the last period end %s, more than %d days",
				dateutil.Format(ref.Reenlistment), gap, dateutil.Format(maxEnd), rule.MaxGapDays)
		}
	}
	return res
}

// baseDates are the resolved baseline dates.
type baseDates struct {
	PEBD               time.Time
	BASD               *time.Time
	AFADBD             *time.Time
	ActiveServiceStart time.Time
	Break              BreakResult
	Notes              []string
}

// lostShiftApplies reports whether lost time moves a continuous baseline forward.
func lostShiftApplies(policy domain.LostTimeShift, hasInactive bool) bool {
	switch policy {
	case domain.LostShiftAlways:
		return true
	case domain.LostShiftNoInactive:
		return !hasInactive
	default:
		return false
	}
}

// resolveBaseDates derives PEBD, BASD, AFADBD and the active service start.
func resolveBaseDates(ref domain.ReferenceDates, credit *creditSummary, rules domain.RuleConfiguration) baseDates {
	var out baseDates
	out.Break = DetectBreak(credit.Creditable, ref, rules.BreakInService)
	shift := lostShiftApplies(rules.LostTimeShift, credit.HasInactive()) && credit.LostDays > 0
	reenlist := ref.Reenlistment

	if out.Break.Break {
		out.Notes = append(out.Notes, out.Break.Reasons...)
	} else {
		out.Notes = append(out.Notes, fmt.Sprintf("no break in service (longest gap %d days, tolerance %d days)",
			out.Break.LongestGap, rules.BreakInService.MaxGapDays))
	}

	switch rules.PEBDMethod {
	case domain.PEBDEOSRelative:
		if reenlist.Before(ref.EOS) {
			out.PEBD = reenlist
			if start, ok := earliestStart(credit.Active); ok {
				out.PEBD = start
			}
			out.Notes = append(out.Notes, fmt.Sprintf("PEBD %s is the earliest active start (reenlistment before EOS)",
				dateutil.Format(out.PEBD)))
		} else {
			out.PEBD = dateutil.ShiftDays(reenlist, -(credit.ActiveDays + 1))
			out.Notes = append(out.Notes, fmt.Sprintf("PEBD %s is reenlistment less %d active days plus one",
				dateutil.Format(out.PEBD), credit.ActiveDays))
		}
	default:
		if out.Break.Break {
			out.PEBD = dateutil.ShiftDays(reenlist, -credit.NetDays)
			out.Notes = append(out.Notes, fmt.Sprintf("PEBD %s is reenlistment less %d net service days",
				dateutil.Format(out.PEBD), credit.NetDays))
			break
		}
		base, origin := continuousBaseline(ref, credit)
		out.PEBD = base
		if shift {
			out.PEBD = dateutil.ShiftDays(base, credit.LostDays)
			out.Notes = append(out.Notes, fmt.Sprintf("PEBD %s is the %s %s moved forward by %d lost days",
				dateutil.Format(out.PEBD), origin, dateutil.Format(base), credit.LostDays))
		} else {
			out.Notes = append(out.Notes, fmt.Sprintf("PEBD %s is the %s", dateutil.Format(out.PEBD), origin))
		}
	}

	if rules.ComputeBASD {
		basd := dateutil.ShiftDays(reenlist, -credit.NetDays)
		if shift {
			basd = dateutil.ShiftDays(basd, credit.LostDays)
		}
		out.BASD = &basd
	}

	if reenlist.Before(ref.EOS) {
		out.ActiveServiceStart = dateutil.ShiftDays(reenlist, -credit.ActiveDays)
	} else {
		out.ActiveServiceStart = out.PEBD
	}

	if rules.ComputeAFADBD {
		afadbd := reenlist
		out.AFADBD = &afadbd
	}
	return out
}

// continuousBaseline is the no-break baseline and a description of where it came from.
func continuousBaseline(ref domain.ReferenceDates, credit *creditSummary) (time.Time, string) {
	if start, ok := earliestStart(credit.Creditable); ok {
		return start, "earliest creditable period start"
	}
	if ref.FirstActiveDuty != nil {
		return *ref.FirstActiveDuty, "first day of active duty"
	}
	return ref.Reenlistment, "reenlistment date"
}

func earliestStart(periods []domain.ServicePeriod) (time.Time, bool) {
	starts := make([]time.Time, len(periods))
	for i, p := range periods {
		starts[i] = p.Start
	}
	return dateutil.Earliest(starts...)
}
