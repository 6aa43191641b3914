package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// AnniversaryWindow returns the k-th DOEAF anniversary year as an inclusive range.
func AnniversaryWindow(doeaf time.Time, k int) (time.Time, time.Time) {
	start := dateutil.AddYears(doeaf, k)
	end := dateutil.ShiftDays(dateutil.AddYears(doeaf, k+1), -1)
	return start, end
}

// firstWindow returns the index of the latest anniversary on or before date.
func firstWindow(doeaf, date time.Time) int {
	k := date.Year() - doeaf.Year()
	for dateutil.AddYears(doeaf, k).After(date) {
		k--
	}
	for !dateutil.AddYears(doeaf, k+1).After(date) {
		k++
	}
	return k
}

// WindowPoints converts the days served inside one anniversary window into drill
// and membership points, each floored.
func WindowPoints(days int, rule domain.PointsRule) (drill, membership int) {
	d := decimal.NewFromInt(int64(days))
	drill = int(d.Div(rule.DaysPerMonth).Mul(rule.DrillsPerMonth).Floor().IntPart())
	membership = int(d.Div(rule.DaysPerYear).Mul(rule.MembershipPerYear).Floor().IntPart())
	return drill, membership
}

// RetirementPoints prorates inactive periods across DOEAF anniversary years.
// Windows with no points are omitted; windows hit by several periods are merged.
func RetirementPoints(doeaf time.Time, inactive []domain.ServicePeriod, rule domain.PointsRule) []domain.AnniversaryPoints {
	doeaf = dateutil.Normalize(doeaf)
	byStart := make(map[time.Time]*domain.AnniversaryPoints)

	for _, p := range inactive {
		if p.End == nil {
			continue
		}
		for k := firstWindow(doeaf, p.Start); ; k++ {
			winStart, winEnd := AnniversaryWindow(doeaf, k)
			if winStart.After(*p.End) {
				break
			}
			overlapStart := dateutil.Later(p.Start, winStart)
			overlapEnd := dateutil.Earlier(*p.End, winEnd)
			if overlapEnd.Before(overlapStart) {
				continue
			}
			days := dateutil.DaysBetween(overlapStart, overlapEnd) + 1
			drill, membership := WindowPoints(days, rule)
			if drill+membership <= 0 {
				continue
			}

			ap, ok := byStart[winStart]
			if !ok {
				ap = &domain.AnniversaryPoints{
					Span:        fmt.Sprintf("%d-%d", winStart.Year(), winStart.Year()+1),
					WindowStart: winStart,
				}
				byStart[winStart] = ap
			}
			ap.Days += days
			ap.DrillPoints += drill
			ap.MembershipPoints += membership
			ap.Points += drill + membership
		}
	}

	out := make([]domain.AnniversaryPoints, 0, len(byStart))
	for _, ap := range byStart {
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WindowStart.Before(out[j].WindowStart)
	})
	return out
}
