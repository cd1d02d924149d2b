package main

import (
	"fmt"
	"math"
)

// UK income tax calculation against a configurable band table.
//
// Band tables are expressed on the taxable-income axis (after the
// personal allowance has been removed) as cumulative upper limits:
// for 2024/25 the standard schedule is 20% to £37,700, 40% to
// £112,570, 45% above. Reference: https://www.gov.uk/income-tax-rates

// TaxBand is one step of a progressive rate schedule: the marginal
// rate applying up to a cumulative upper limit of taxable income.
// The final band of a table must be unbounded (Limit = +Inf).
type TaxBand struct {
	Name  string  `json:"name"`
	Limit float64 `json:"limit"` // cumulative upper limit; math.Inf(1) for the top band
	Rate  float64 `json:"rate"`
}

// validateBands checks the band-table contract: non-empty, strictly
// increasing limits, non-negative rates, unbounded top band.
func validateBands(bands []TaxBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("band table is empty")
	}
	prev := 0.0
	for i, band := range bands {
		if band.Rate < 0 {
			return fmt.Errorf("band %q has negative rate %v", band.Name, band.Rate)
		}
		if band.Limit <= prev {
			return fmt.Errorf("band %q limit %v does not exceed previous limit %v", band.Name, band.Limit, prev)
		}
		prev = band.Limit
		if i == len(bands)-1 && !math.IsInf(band.Limit, 1) {
			return fmt.Errorf("top band %q must be unbounded", band.Name)
		}
	}
	return nil
}

// mustValidBands panics on a malformed band table. A bad table is a
// caller programming error, not bad tax data, so it fails loudly
// rather than producing a silently wrong calculation.
func mustValidBands(bands []TaxBand) {
	if err := validateBands(bands); err != nil {
		panic("goTaxEstimator: " + err.Error())
	}
}

// CalculatePersonalAllowance returns the personal allowance available
// at a given total income, applying the taper: the allowance reduces
// by £1 for every £2 of income over the taper threshold, reaching zero
// at the taper limit. Evaluated once against the sum of all sources'
// incomes, never per source - the allowance is a whole-person
// entitlement.
// Reference: https://www.gov.uk/income-tax-rates/income-over-100000
func CalculatePersonalAllowance(totalIncome float64, tax TaxConfig) float64 {
	allowance := tax.GetPersonalAllowance()
	threshold := tax.GetTaperThreshold()
	if totalIncome <= threshold {
		return allowance
	}
	if totalIncome >= tax.GetTaperLimit() {
		return 0
	}
	return math.Max(0, allowance-(totalIncome-threshold)/2)
}

// CalculateTaxOnSlice calculates the tax on a slice of taxable income
// that begins partway through the band table. Each band offers
// limit - position of room; the slice consumes room band by band,
// accumulating tax at each band's rate. This is what lets sources and
// adjustments be taxed sequentially: the second source starts where
// the first one's taxable income ended.
func CalculateTaxOnSlice(amount, startingPosition float64, bands []TaxBand) float64 {
	mustValidBands(bands)
	if startingPosition < 0 {
		panic("goTaxEstimator: negative band position")
	}
	if amount <= 0 {
		return 0
	}

	var totalTax float64
	position := startingPosition
	remaining := amount

	for _, band := range bands {
		room := band.Limit - position
		if room <= 0 {
			continue
		}
		taxedInBand := math.Min(remaining, room)
		totalTax += taxedInBand * band.Rate
		position += taxedInBand
		remaining -= taxedInBand
		if remaining <= 0 {
			break
		}
	}

	return totalTax
}

// CalculateTaxDue calculates the tax owed on a taxable income figure
// from the bottom of the band table. Returns 0 for non-positive input.
func CalculateTaxDue(taxableIncome float64, bands []TaxBand) float64 {
	if taxableIncome <= 0 {
		return 0
	}
	return CalculateTaxOnSlice(taxableIncome, 0, bands)
}

// GetMarginalRate returns the rate applying to the next pound of
// taxable income at a given cumulative position. At a band boundary
// the higher band's rate applies. Reporting only - the engine never
// computes tax by multiplying a marginal rate.
func GetMarginalRate(position float64, bands []TaxBand) float64 {
	mustValidBands(bands)
	for _, band := range bands {
		if position < band.Limit {
			return band.Rate
		}
	}
	return bands[len(bands)-1].Rate
}
