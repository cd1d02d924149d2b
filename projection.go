package main

import (
	"math"
	"time"
)

// ProjectionMethod records how a source's annual income figure was
// arrived at, for the derivation trail and the UI
type ProjectionMethod int

const (
	OneOffIncome       ProjectionMethod = iota // one-off payment, used at face value
	UserOverride                               // caller supplied the annual figure directly
	PeriodRate                                 // annualised from income per period worked
	InsufficientData                           // projection not possible, income-to-date used unprojected
)

func (m ProjectionMethod) String() string {
	switch m {
	case OneOffIncome:
		return "One-Off"
	case UserOverride:
		return "User Override"
	case PeriodRate:
		return "Period Rate"
	case InsufficientData:
		return "Insufficient Data"
	default:
		return "Unknown"
	}
}

// ProjectionResult is the annualised view of a single income source
type ProjectionResult struct {
	Income        float64 // projected (or actual) income for the full employment window
	Projected     bool    // false when Income is just IncomeToDate verbatim
	Method        ProjectionMethod
	PeriodsWorked float64 // equivalent periods the income-to-date covers (PeriodRate only)
	TotalPeriods  float64 // equivalent periods in the full window (PeriodRate only)
}

// ProjectIncome turns a source's part-year income into a full-window
// figure. Regular sources are annualised from their per-period rate
// unless the caller supplied an explicit projected income; one-off
// sources are never projected. Every degenerate case (not started yet,
// zero periods worked, non-finite result) falls back to the
// income-to-date figure rather than failing: the caller must always
// have something to render.
func ProjectIncome(src IncomeSource, asOf, yearStart time.Time) ProjectionResult {
	if !src.IsRegular {
		return ProjectionResult{Income: src.IncomeToDate, Method: OneOffIncome}
	}

	if src.ProjectedIncome != nil {
		return ProjectionResult{Income: *src.ProjectedIncome, Projected: true, Method: UserOverride}
	}

	yearStart = normalizeDate(yearStart)
	start := src.StartDate
	if start.IsZero() {
		start = yearStart
	}
	start = clampToYearStart(normalizeDate(start), yearStart)
	end := src.EndDate
	if end.IsZero() {
		end = TaxYearEnd(yearStart)
	}
	end = normalizeDate(end)
	if yearEnd := TaxYearEnd(yearStart); end.After(yearEnd) {
		end = yearEnd
	}

	totalPeriods := TotalPeriodsInRange(start, end, yearStart)

	var periodsWorked float64
	if src.PeriodsPaid != nil {
		// An explicit periods-paid count is whole periods by
		// definition; no fractional first-period adjustment.
		if *src.PeriodsPaid < 0 {
			panic("goTaxEstimator: negative periods paid")
		}
		periodsWorked = float64(*src.PeriodsPaid)
	} else {
		effectiveAsOf := normalizeDate(asOf)
		if effectiveAsOf.After(end) {
			// An ended employment stops accruing periods on its last
			// day; viewing it later must not dilute the period rate.
			effectiveAsOf = end
		}
		if !effectiveAsOf.After(start) {
			// Income has not started yet (or starts today): there is no
			// elapsed window to derive a rate from.
			return ProjectionResult{Income: src.IncomeToDate, Method: InsufficientData}
		}
		periodsWorked = EquivalentPeriodsWorked(start, effectiveAsOf, yearStart).Equivalent
	}

	if periodsWorked <= 0 {
		return ProjectionResult{Income: src.IncomeToDate, Method: InsufficientData}
	}

	projected := round2(src.IncomeToDate / periodsWorked * totalPeriods)
	if math.IsNaN(projected) || math.IsInf(projected, 0) {
		return ProjectionResult{Income: src.IncomeToDate, Method: InsufficientData}
	}

	return ProjectionResult{
		Income:        projected,
		Projected:     true,
		Method:        PeriodRate,
		PeriodsWorked: periodsWorked,
		TotalPeriods:  totalPeriods,
	}
}

// round2 rounds a monetary amount to 2 decimal places. Applied only at
// computation boundaries, never mid-calculation.
func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
