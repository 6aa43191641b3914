package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
)

// ObligationProjection is the minimum service obligation outcome.
type ObligationProjection struct {
	Years       int
	ExpectedEOS time.Time
	NewEOS      time.Time
	Shortfall   bool
	Note        string
}

// ProjectObligation selects the obligation length from DOEAF and compares the
// expected end date with the actual EOS. A year is 365 days plus one leap day
// per four years.
func ProjectObligation(ref domain.ReferenceDates, rule domain.ObligationRule) ObligationProjection {
	years := rule.YearsOnOrAfter
	if ref.DOEAF.Before(rule.Cutoff) {
		years = rule.YearsBefore
	}

	proj := ObligationProjection{
		Years:       years,
		ExpectedEOS: dateutil.ShiftDays(ref.DOEAF, years*365+years/4),
	}

	if ref.EOS.Before(proj.ExpectedEOS) {
		remaining := dateutil.DaysBetween(ref.EOS, proj.ExpectedEOS)
		proj.Shortfall = true
		proj.NewEOS = dateutil.ShiftDays(ref.Reenlistment, remaining)
		proj.Note = fmt.Sprintf("EOS %s is %d days short of the %d-year obligation ending %s; new EOS %s",
			dateutil.Format(ref.EOS), remaining, years, dateutil.Format(proj.ExpectedEOS), dateutil.Format(proj.NewEOS))
		return proj
	}

	proj.NewEOS = dateutil.Later(ref.EOS, proj.ExpectedEOS)
	proj.Note = fmt.Sprintf("EOS %s satisfies the %d-year obligation ending %s",
		dateutil.Format(ref.EOS), years, dateutil.Format(proj.ExpectedEOS))
	return proj
}
