package main

import (
	"fmt"
	"time"
)

// CalculationOptions carries the per-call inputs that are not tax
// data: the as-of date used to derive elapsed periods (the engine
// never reads the clock itself, so calculations are reproducible) and
// the named band table to tax against (empty = the config default).
type CalculationOptions struct {
	AsOf      time.Time
	BandTable string
}

// CalculateTaxPosition estimates the in-year tax position from
// part-year income data. It is a pure function of its inputs: sources,
// deductions and adjustments are read in caller order and never
// mutated, and the result is fully materialized per call.
//
// The derivation runs in a fixed order. Each source's income is
// projected to a full-window figure; the personal allowance is
// computed once from the total; allowance and tax bands are then
// consumed sequentially across the sources in input order, so
// reordering sources changes which source carries which marginal rate
// (but not the aggregate tax). Deductions reduce the aggregate taxable
// income, and adjustments stack on top at the running marginal
// position. The headline tax figure is recomputed from the aggregate,
// not summed from the per-source attribution; the two views reconcile
// but are derived independently.
func CalculateTaxPosition(cfg *Config, sources []IncomeSource, deductions []Deduction,
	adjustments []Adjustment, opts CalculationOptions) (*CalculationResult, error) {

	if opts.AsOf.IsZero() {
		return nil, fmt.Errorf("as-of date is required")
	}
	bandTableName, bands, err := cfg.BandTable(opts.BandTable)
	if err != nil {
		return nil, err
	}

	asOf := normalizeDate(opts.AsOf)
	yearStart := cfg.TaxYear.GetStartDate()

	var steps []string
	addStep := func(format string, args ...interface{}) {
		steps = append(steps, fmt.Sprintf(format, args...))
	}

	addStep("Tax year %s, calculated as of %s using the %q band table",
		TaxYearLabel(yearStart.Year()), asOf.Format("2 Jan 2006"), bandTableName)

	// Project every source to a full-window income figure
	projections := make([]ProjectionResult, len(sources))
	totalIncome := 0.0
	for i, src := range sources {
		pr := ProjectIncome(src, asOf, yearStart)
		projections[i] = pr
		totalIncome += pr.Income

		switch pr.Method {
		case OneOffIncome:
			addStep("%s: one-off income £%.2f used at face value", src.Name, pr.Income)
		case UserOverride:
			addStep("%s: projected income £%.2f supplied by user, period maths bypassed", src.Name, pr.Income)
		case PeriodRate:
			addStep("%s: £%.2f over %.4g periods worked = £%.2f/period, × %.4g total periods = £%.2f projected",
				src.Name, src.IncomeToDate, pr.PeriodsWorked,
				src.IncomeToDate/pr.PeriodsWorked, pr.TotalPeriods, pr.Income)
		case InsufficientData:
			addStep("%s: insufficient elapsed periods to project, £%.2f used unprojected", src.Name, pr.Income)
		}
	}
	addStep("Total income: £%.2f", totalIncome)

	// The allowance is a whole-person entitlement: computed once
	// against the total, then shared out across the sources.
	allowance := CalculatePersonalAllowance(totalIncome, cfg.Tax)
	if allowance < cfg.Tax.GetPersonalAllowance() {
		addStep("Personal allowance tapered to £%.2f (income over £%.2f reduces it by £1 per £2)",
			allowance, cfg.Tax.GetTaperThreshold())
	} else {
		addStep("Personal allowance: £%.2f", allowance)
	}

	// Sequential allocation: thread the remaining allowance and the
	// band-position cursor through the sources in input order. The
	// cursor only ever moves up.
	details := make([]SourceDetail, len(sources))
	allowanceRemaining := allowance
	bandPosition := 0.0
	totalTaxPaid := 0.0
	for i, src := range sources {
		income := projections[i].Income
		allowanceUsed := min(allowanceRemaining, income)
		taxable := income - allowanceUsed
		taxDue := CalculateTaxOnSlice(taxable, bandPosition, bands)

		taxPaid := 0.0
		assumed := false
		switch {
		case src.TaxPaid != nil:
			taxPaid = *src.TaxPaid
		case src.IsRegular:
			// Balanced-PAYE default: assume the payroll withheld
			// exactly the right amount. A named policy, not an
			// inferred fact - it understates any real over- or
			// under-payment on this source.
			taxPaid = taxDue
			assumed = true
		}

		details[i] = SourceDetail{
			ID:             src.ID,
			Name:           src.Name,
			Income:         round2(income),
			Projected:      projections[i].Projected,
			Method:         projections[i].Method.String(),
			AllowanceUsed:  round2(allowanceUsed),
			TaxableIncome:  round2(taxable),
			TaxDue:         round2(taxDue),
			TaxPaid:        round2(taxPaid),
			TaxPaidAssumed: assumed,
			Difference:     round2(taxPaid - taxDue),
		}

		addStep("%s: allowance used £%.2f, taxable £%.2f from band position £%.2f, tax due £%.2f",
			src.Name, allowanceUsed, taxable, bandPosition, taxDue)
		if assumed {
			addStep("%s: no tax paid entered, assumed balanced PAYE (£%.2f)", src.Name, taxDue)
		}

		bandPosition += taxable
		allowanceRemaining -= allowanceUsed
		totalTaxPaid += taxPaid
	}

	// Aggregate path: the headline tax is recomputed from the
	// allowance-adjusted total so it cannot drift from per-source
	// rounding or ordering.
	taxableIncome := max(0, totalIncome-allowance)
	totalDeductions := 0.0
	for _, d := range deductions {
		if d.Amount < 0 {
			panic("goTaxEstimator: negative deduction amount")
		}
		totalDeductions += d.Amount
		addStep("Deduction %s (%s): £%.2f", d.Description, d.Category, d.Amount)
	}
	taxableAfterDeductions := max(0, taxableIncome-totalDeductions)
	if totalDeductions > 0 {
		addStep("Taxable income £%.2f less deductions £%.2f = £%.2f",
			taxableIncome, totalDeductions, taxableAfterDeductions)
	} else {
		addStep("Taxable income after allowance: £%.2f", taxableIncome)
	}

	taxDueOnIncome := CalculateTaxDue(taxableAfterDeductions, bands)
	addStep("Tax due on income: £%.2f", taxDueOnIncome)

	// Adjustments stack in input order on top of the taxed income.
	// Taxable-income adjustments are costed by two full band
	// evaluations, not a single-rate multiply, so an amount that spans
	// a band boundary is taxed correctly on both sides of it.
	adjustmentTax := 0.0
	taxablePosition := taxableAfterDeductions
	for _, adj := range adjustments {
		switch adj.Kind {
		case DirectTax:
			adjustmentTax += adj.Amount
			addStep("Adjustment %s: £%.2f added directly to tax due", adj.Description, adj.Amount)
		case TaxableIncome:
			incremental := CalculateTaxDue(taxablePosition+adj.Amount, bands) -
				CalculateTaxDue(taxablePosition, bands)
			adjustmentTax += incremental
			addStep("Adjustment %s: £%.2f taxable on top of £%.2f adds £%.2f tax",
				adj.Description, adj.Amount, taxablePosition, incremental)
			taxablePosition += adj.Amount
		default:
			panic(fmt.Sprintf("goTaxEstimator: unknown adjustment kind %d", adj.Kind))
		}
	}

	finalTaxDue := taxDueOnIncome + adjustmentTax
	netPosition := totalTaxPaid - finalTaxDue
	addStep("Final tax due £%.2f, tax paid £%.2f, net position £%.2f",
		finalTaxDue, totalTaxPaid, netPosition)

	return &CalculationResult{
		AsOf:                   asOf,
		BandTable:              bandTableName,
		TotalIncome:            round2(totalIncome),
		PersonalAllowance:      round2(allowance),
		Sources:                details,
		TaxableIncome:          round2(taxableIncome),
		TotalDeductions:        round2(totalDeductions),
		TaxableAfterDeductions: round2(taxableAfterDeductions),
		TaxDueOnIncome:         round2(taxDueOnIncome),
		AdjustmentTax:          round2(adjustmentTax),
		FinalTaxDue:            round2(finalTaxDue),
		TotalTaxPaid:           round2(totalTaxPaid),
		NetPosition:            round2(netPosition),
		MarginalRate:           GetMarginalRate(taxablePosition, bands),
		Steps:                  steps,
	}, nil
}
