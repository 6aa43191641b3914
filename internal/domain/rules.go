package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rgehrsitz/pebdcalc/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// BreakAnchor selects the date the reenlistment gap is measured from.
type BreakAnchor string

const (
	AnchorLastPeriodEnd BreakAnchor = "last_period_end"
	AnchorEOS           BreakAnchor = "eos"
)

// BreakRule configures the break-in-service test.
type BreakRule struct {
	// MaxGapDays is the largest tolerated gap; a longer gap is a break.
	MaxGapDays      int         `yaml:"max_gap_days" json:"max_gap_days"`
	Anchor          BreakAnchor `yaml:"anchor" json:"anchor"`
	CheckPeriodGaps bool        `yaml:"check_period_gaps" json:"check_period_gaps"`
}

// DEPCreditPolicy holds the historical DEP cutoffs. A nil cutoff disables its clause.
type DEPCreditPolicy struct {
	// AlwaysBefore: DEP starting before this date is always creditable.
	AlwaysBefore *time.Time `yaml:"always_before" json:"always_before,omitempty"`
	// IDTFrom: DEP starting on or after this date is creditable only with IDT performed.
	IDTFrom *time.Time `yaml:"idt_from" json:"idt_from,omitempty"`
}

// InactiveCredit selects how inactive periods contribute days.
type InactiveCredit string

const (
	InactiveDateSpan       InactiveCredit = "date_span"
	InactiveExplicitPoints InactiveCredit = "explicit_points"
)

// LostTimeShift selects when lost time moves a continuous-service baseline forward.
type LostTimeShift string

const (
	LostShiftNone       LostTimeShift = "none"
	LostShiftAlways     LostTimeShift = "always"
	LostShiftNoInactive LostTimeShift = "no_inactive"
)

// PEBDMethod selects the PEBD decision tree.
type PEBDMethod string

const (
	PEBDBreakTest   PEBDMethod = "break_test"
	PEBDEOSRelative PEBDMethod = "eos_relative"
)

// ObligationRule configures the minimum service obligation projection.
type ObligationRule struct {
	Cutoff         time.Time `yaml:"cutoff" json:"cutoff"`
	YearsBefore    int       `yaml:"years_before" json:"years_before"`
	YearsOnOrAfter int       `yaml:"years_on_or_after" json:"years_on_or_after"`
}

// PointsRule holds the reserve retirement point proration constants.
type PointsRule struct {
	DaysPerMonth      decimal.Decimal `yaml:"days_per_month" json:"days_per_month"`
	DrillsPerMonth    decimal.Decimal `yaml:"drills_per_month" json:"drills_per_month"`
	DaysPerYear       decimal.Decimal `yaml:"days_per_year" json:"days_per_year"`
	MembershipPerYear decimal.Decimal `yaml:"membership_per_year" json:"membership_per_year"`
}

// DefaultPointsRule returns the ~1.85 drills/month and 15 membership points/year rule.
func DefaultPointsRule() PointsRule {
	return PointsRule{
		DaysPerMonth:      decimal.RequireFromString("30.44"),
		DrillsPerMonth:    decimal.RequireFromString("1.85"),
		DaysPerYear:       decimal.RequireFromString("365.25"),
		MembershipPerYear: decimal.NewFromInt(15),
	}
}

// RuleConfiguration is the explicit set of regulatory choices a computation runs under.
type RuleConfiguration struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	DayCount           dateutil.DayCount `yaml:"day_count" json:"day_count"`
	YearLength         int               `yaml:"year_length" json:"year_length"`
	DurationLeapAdjust bool              `yaml:"duration_leap_adjust" json:"duration_leap_adjust"`
	CapAtEOS           bool              `yaml:"cap_at_eos" json:"cap_at_eos"`

	BreakInService BreakRule       `yaml:"break_in_service" json:"break_in_service"`
	DEPCredit      DEPCreditPolicy `yaml:"dep_credit" json:"dep_credit"`
	InactiveCredit InactiveCredit  `yaml:"inactive_credit" json:"inactive_credit"`
	LostTimeShift  LostTimeShift   `yaml:"lost_time_shift" json:"lost_time_shift"`

	PEBDMethod    PEBDMethod `yaml:"pebd_method" json:"pebd_method"`
	ComputeBASD   bool       `yaml:"compute_basd" json:"compute_basd"`
	ComputeAFADBD bool       `yaml:"compute_afadbd" json:"compute_afadbd"`

	Obligation ObligationRule `yaml:"obligation" json:"obligation"`
	Points     PointsRule     `yaml:"points" json:"points"`
}

// StandardRules returns the baseline rule set: actual inclusive days, a 90-day
// break tolerance, the 1985/1989 DEP cutoffs and the 6/8 year obligation split.
func StandardRules() RuleConfiguration {
	alwaysBefore := time.Date(1985, time.January, 1, 0, 0, 0, 0, time.UTC)
	idtFrom := time.Date(1989, time.November, 29, 0, 0, 0, 0, time.UTC)

	return RuleConfiguration{
		Name:        "standard",
		Description: "Actual inclusive days, 90-day break tolerance, DEP per 1985/1989 cutoffs",
		DayCount: dateutil.DayCount{
			Convention: dateutil.ActualInclusive,
			February:   dateutil.FebruaryLeapOnly,
		},
		YearLength: 365,
		CapAtEOS:   true,
		BreakInService: BreakRule{
			MaxGapDays:      90,
			Anchor:          AnchorLastPeriodEnd,
			CheckPeriodGaps: true,
		},
		DEPCredit: DEPCreditPolicy{
			AlwaysBefore: &alwaysBefore,
			IDTFrom:      &idtFrom,
		},
		InactiveCredit: InactiveDateSpan,
		LostTimeShift:  LostShiftNoInactive,
		PEBDMethod:     PEBDBreakTest,
		ComputeBASD:    true,
		ComputeAFADBD:  true,
		Obligation: ObligationRule{
			Cutoff:         time.Date(1984, time.June, 1, 0, 0, 0, 0, time.UTC),
			YearsBefore:    6,
			YearsOnOrAfter: 8,
		},
		Points: DefaultPointsRule(),
	}
}

// Validate checks every enumerated option and numeric bound.
func (rc RuleConfiguration) Validate() error {
	if err := rc.DayCount.Validate(); err != nil {
		return NewComputationError(KindInvalidInput, "rules.day_count", string(rc.DayCount.Convention), err.Error())
	}
	if !dateutil.ValidYearLength(rc.YearLength) {
		return NewComputationError(KindInvalidInput, "rules.year_length", strconv.Itoa(rc.YearLength), "must be 360 or 365")
	}
	if rc.BreakInService.MaxGapDays < 0 {
		return NewComputationError(KindInvalidInput, "rules.break_in_service.max_gap_days",
			strconv.Itoa(rc.BreakInService.MaxGapDays), "must not be negative")
	}
	switch rc.BreakInService.Anchor {
	case AnchorLastPeriodEnd, AnchorEOS:
	default:
		return invalidOption("rules.break_in_service.anchor", string(rc.BreakInService.Anchor))
	}
	switch rc.InactiveCredit {
	case InactiveDateSpan, InactiveExplicitPoints:
	default:
		return invalidOption("rules.inactive_credit", string(rc.InactiveCredit))
	}
	switch rc.LostTimeShift {
	case LostShiftNone, LostShiftAlways, LostShiftNoInactive:
	default:
		return invalidOption("rules.lost_time_shift", string(rc.LostTimeShift))
	}
	switch rc.PEBDMethod {
	case PEBDBreakTest, PEBDEOSRelative:
	default:
		return invalidOption("rules.pebd_method", string(rc.PEBDMethod))
	}
	if rc.Obligation.YearsBefore <= 0 || rc.Obligation.YearsOnOrAfter <= 0 {
		return NewComputationError(KindInvalidInput, "rules.obligation",
			fmt.Sprintf("%d/%d", rc.Obligation.YearsBefore, rc.Obligation.YearsOnOrAfter), "obligation years must be positive")
	}
	for _, c := range []struct {
		field string
		value decimal.Decimal
	}{
		{"rules.points.days_per_month", rc.Points.DaysPerMonth},
		{"rules.points.drills_per_month", rc.Points.DrillsPerMonth},
		{"rules.points.days_per_year", rc.Points.DaysPerYear},
		{"rules.points.membership_per_year", rc.Points.MembershipPerYear},
	} {
		if !c.value.IsPositive() {
			return NewComputationError(KindInvalidInput, c.field, c.value.String(), "must be positive")
		}
	}
	return nil
}

func invalidOption(field, value string) error {
	return NewComputationError(KindInvalidInput, field, value, "unknown option")
}
