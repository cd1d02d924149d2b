package main

import (
	"fmt"
	"time"
)

// PAYE pay periods run from the 6th of one calendar month to the 5th
// of the next, matching the UK tax year which starts on 6 April.
// Period 1 starts on the tax year start date; period 12 ends on the
// last day of the tax year (5 April of the following calendar year).
// Reference: https://www.gov.uk/hmrc-internal-manuals/paye-manual

// PayPeriod describes one monthly pay period within a tax year
type PayPeriod struct {
	Number     int       // 1-12 within the tax year
	Start      time.Time // the 6th
	End        time.Time // the 5th of the following month (inclusive)
	LengthDays int       // calendar days from Start to End inclusive (28-31)
}

// PeriodsWorked describes how many pay periods an employment has
// covered, with the first (possibly partial) period counted as a
// fraction of its length in days.
type PeriodsWorked struct {
	Equivalent          float64 // FirstPeriodFraction + WholePeriodsAfter
	FirstPeriodFraction float64 // 1.0 when work started exactly on the 6th
	WholePeriodsAfter   int     // full periods after the first, up to and including the as-of period
	StartPeriod         int     // period number the employment started in
}

// normalizeDate strips the time-of-day and timezone so that day
// arithmetic is exact regardless of how the caller built the date
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole days from a to b.
// Both arguments must be normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// clampToYearStart pulls dates earlier than the tax year start up to
// the start; a person cannot have worked periods before the year began
func clampToYearStart(date, yearStart time.Time) time.Time {
	if date.Before(yearStart) {
		return yearStart
	}
	return date
}

// PeriodDatesFor returns the dates of a numbered pay period within the
// tax year starting at yearStart. Period numbers outside [1,12] are
// clamped.
func PeriodDatesFor(periodNumber int, yearStart time.Time) PayPeriod {
	if periodNumber < 1 {
		periodNumber = 1
	}
	if periodNumber > 12 {
		periodNumber = 12
	}

	yearStart = normalizeDate(yearStart)
	start := yearStart.AddDate(0, periodNumber-1, 0)
	nextStart := start.AddDate(0, 1, 0)
	return PayPeriod{
		Number:     periodNumber,
		Start:      start,
		End:        nextStart.AddDate(0, 0, -1),
		LengthDays: daysBetween(start, nextStart),
	}
}

// PeriodOf returns the pay period containing the given date. Dates on
// the 6th belong to the period starting that day; dates on the 1st-5th
// belong to the period that started on the 6th of the previous month.
// The period number wraps across the calendar-year boundary
// (December into January) while continuing to count 1-12 relative to
// the tax year. Dates before the tax year start resolve to period 1;
// dates beyond the tax year end resolve to period 12.
func PeriodOf(date, yearStart time.Time) PayPeriod {
	date = normalizeDate(date)
	yearStart = normalizeDate(yearStart)
	date = clampToYearStart(date, yearStart)

	// Month holding the period start: the current month if the date is
	// on or after the boundary day, otherwise the previous month.
	periodStartMonth := date
	if date.Day() < yearStart.Day() {
		periodStartMonth = date.AddDate(0, -1, 0)
	}

	months := (periodStartMonth.Year()-yearStart.Year())*12 +
		int(periodStartMonth.Month()) - int(yearStart.Month())
	return PeriodDatesFor(months+1, yearStart)
}

// EquivalentPeriodsWorked computes how many pay periods have been
// worked from an employment start date up to an as-of date. The first
// period contributes days-worked divided by period length (exactly 1.0
// when the start falls on the 6th); every later period up to and
// including the as-of period contributes 1.0. This fractional first
// period is what makes annualisation correct for people who start
// mid-period.
func EquivalentPeriodsWorked(start, asOf, yearStart time.Time) PeriodsWorked {
	yearStart = normalizeDate(yearStart)
	start = clampToYearStart(normalizeDate(start), yearStart)
	asOf = clampToYearStart(normalizeDate(asOf), yearStart)

	startPeriod := PeriodOf(start, yearStart)
	if asOf.Before(start) {
		return PeriodsWorked{StartPeriod: startPeriod.Number}
	}

	daysWorked := daysBetween(start, startPeriod.End) + 1
	fraction := float64(daysWorked) / float64(startPeriod.LengthDays)

	asOfPeriod := PeriodOf(asOf, yearStart)
	whole := asOfPeriod.Number - startPeriod.Number
	if whole < 0 {
		whole = 0
	}

	return PeriodsWorked{
		Equivalent:          fraction + float64(whole),
		FirstPeriodFraction: fraction,
		WholePeriodsAfter:   whole,
		StartPeriod:         startPeriod.Number,
	}
}

// TotalPeriodsInRange computes the equivalent pay periods covered by a
// full employment window, with both ends clamped to the tax year. This
// is the annualisation denominator's counterpart: income per period
// times this total gives the projected income for the whole window.
func TotalPeriodsInRange(start, end, yearStart time.Time) float64 {
	yearStart = normalizeDate(yearStart)
	start = clampToYearStart(normalizeDate(start), yearStart)
	end = normalizeDate(end)

	yearEnd := yearStart.AddDate(1, 0, -1) // 5 April of the following year
	if end.After(yearEnd) {
		end = yearEnd
	}
	if end.Before(start) {
		return 0
	}

	return EquivalentPeriodsWorked(start, end, yearStart).Equivalent
}

// TaxYearEnd returns the last day of the tax year starting at yearStart
func TaxYearEnd(yearStart time.Time) time.Time {
	return normalizeDate(yearStart).AddDate(1, 0, -1)
}

// TaxYearLabel formats a tax year start year as "2024/25"
func TaxYearLabel(year int) string {
	return fmt.Sprintf("%d/%02d", year, (year+1)%100)
}

// TaxYearLabelShort formats a tax year start year as "24/25"
func TaxYearLabelShort(year int) string {
	return fmt.Sprintf("%02d/%02d", year%100, (year+1)%100)
}
