package main

import (
	"testing"
	"time"
)

// End-to-End Scenario Tests
//
// Whole-position calculations validated against hand-derived HMRC
// figures for the 2024/25 tax year.
// Reference: https://www.gov.uk/income-tax-rates

func TestScenarioBasicRateEmployee(t *testing.T) {
	// £50,000: full allowance, everything left in the basic band.
	// (50000 - 12570) × 0.20 = 7486
	cfg := testConfig()
	result, err := CalculateTaxPosition(cfg, []IncomeSource{fixedSource("Salary", 50000)}, nil, nil, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 12570, result.PersonalAllowance, "full allowance at £50,000")
	assertTaxEquals(t, 7486, result.FinalTaxDue, "tax on £50,000")
	assertTaxEquals(t, 0, result.NetPosition, "balanced PAYE default nets to zero")
}

func TestScenarioHundredThousand(t *testing.T) {
	// £100,000: the allowance survives intact (taper starts above this
	// exact figure). 7540 basic + (87430 - 37700) × 0.40 = 27432
	cfg := testConfig()
	result, err := CalculateTaxPosition(cfg, []IncomeSource{fixedSource("Salary", 100000)}, nil, nil, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 12570, result.PersonalAllowance, "allowance untapered at exactly £100,000")
	assertTaxEquals(t, 87430, result.TaxableIncome, "taxable income")
	assertTaxEquals(t, 27432, result.FinalTaxDue, "tax on £100,000")
}

func TestScenarioAllowanceFullyTapered(t *testing.T) {
	// £125,140: allowance fully gone, the whole income is taxable.
	// 7540 + 74870 × 0.40 + 12570 × 0.45 = 43144.50
	cfg := testConfig()
	result, err := CalculateTaxPosition(cfg, []IncomeSource{fixedSource("Salary", 125140)}, nil, nil, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 0, result.PersonalAllowance, "allowance fully tapered at £125,140")
	assertTaxEquals(t, 125140, result.TaxableIncome, "taxable income")
	assertTaxEquals(t, 43144.50, result.FinalTaxDue, "tax on £125,140")
	if result.MarginalRate != 0.45 {
		t.Errorf("marginal rate = %v; want 0.45", result.MarginalRate)
	}
}

func TestScenarioTwoRegularJobs(t *testing.T) {
	// Two regular sources of £20,000 and £15,000: total £35,000, full
	// allowance, everything at basic rate. (35000 - 12570) × 0.20 = 4486
	cfg := testConfig()
	sources := []IncomeSource{fixedSource("Main job", 20000), fixedSource("Second job", 15000)}

	result, err := CalculateTaxPosition(cfg, sources, nil, nil, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 35000, result.TotalIncome, "total income")
	assertTaxEquals(t, 12570, result.PersonalAllowance, "personal allowance")
	assertTaxEquals(t, 4486, result.FinalTaxDue, "tax on £35,000")
	if result.MarginalRate != 0.20 {
		t.Errorf("marginal rate = %v; want 0.20", result.MarginalRate)
	}
}

func TestScenarioMidYearProjection(t *testing.T) {
	// A salary that started with the tax year, observed part-way
	// through period 6: £15,000 over 6 periods projects to £30,000.
	// The balanced-PAYE default then assumes withholding matches.
	cfg := testConfig()
	sources := []IncomeSource{{
		ID:           "emp-1",
		Name:         "Salary",
		IncomeToDate: 15000,
		IsRegular:    true,
		StartDate:    time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC),
	}}

	result, err := CalculateTaxPosition(cfg, sources, nil, nil, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 30000, result.TotalIncome, "projected annual income")
	assertTaxEquals(t, 3486, result.FinalTaxDue, "(30000 - 12570) × 0.20")
	if !result.Sources[0].Projected {
		t.Error("source should be marked projected")
	}
	if !result.Sources[0].TaxPaidAssumed {
		t.Error("tax paid should be the balanced-PAYE assumption")
	}
}

func TestScenarioJobStartingOnPeriodBoundary(t *testing.T) {
	// Starting exactly on the 6th: the first period counts as exactly
	// 1.0, so £2,000/period over periods 4-7 projects cleanly across
	// the 9-period window (6 July to 5 April).
	cfg := testConfig()
	sources := []IncomeSource{{
		ID:           "emp-2",
		Name:         "New employment",
		IncomeToDate: 8000,
		IsRegular:    true,
		StartDate:    time.Date(2024, time.July, 6, 0, 0, 0, 0, time.UTC),
	}}
	opts := CalculationOptions{AsOf: time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)}

	result, err := CalculateTaxPosition(cfg, sources, nil, nil, opts)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	// 4 equivalent periods worked (periods 4, 5, 6 and 7), 9 in the
	// window: 8000 / 4 × 9 = 18000
	assertTaxEquals(t, 18000, result.TotalIncome, "projected income for a 6 July start")
}

func TestScenarioRedundancyMidYear(t *testing.T) {
	// Employment ended 5 October with £24,000 earned over 6 periods,
	// plus a one-off £10,000 redundancy-style payment with £1,500
	// withheld. The period count is derived from the employment's own
	// window, not the later as-of date, so the income stays £24,000.
	cfg := testConfig()
	sources := []IncomeSource{
		{
			ID:           "emp",
			Name:         "Former employment",
			IncomeToDate: 24000,
			IsRegular:    true,
			StartDate:    time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC),
			TaxPaid:      floatPtr(3500),
		},
		{
			ID:           "payoff",
			Name:         "Termination payment",
			IncomeToDate: 10000,
			IsRegular:    false,
			TaxPaid:      floatPtr(1500),
		},
	}
	opts := CalculationOptions{AsOf: time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)}

	result, err := CalculateTaxPosition(cfg, sources, nil, nil, opts)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	assertTaxEquals(t, 34000, result.TotalIncome, "ended employment not projected past its window")
	assertTaxEquals(t, 4286, result.FinalTaxDue, "(34000 - 12570) × 0.20")
	assertTaxEquals(t, 5000, result.TotalTaxPaid, "entered withholding totals")
	assertTaxEquals(t, 714, result.NetPosition, "overpaid £714")
}

func TestScenarioFullPosition(t *testing.T) {
	// A complete in-year position: projected salary, untaxed one-off,
	// pension deduction, stacked savings-interest adjustment and a
	// direct-tax charge.
	cfg := testConfig()
	sources := []IncomeSource{
		fixedSource("Salary", 55000),
		{ID: "gig", Name: "Consulting", IncomeToDate: 4000, IsRegular: false},
	}
	deductions := []Deduction{
		{Description: "Pension contributions", Amount: 3000, Category: "pension"},
	}
	adjustments := []Adjustment{
		{Description: "Savings interest", Amount: 2000, Kind: TaxableIncome},
		{Description: "Underpayment brought forward", Amount: 150, Kind: DirectTax},
	}

	result, err := CalculateTaxPosition(cfg, sources, deductions, adjustments, testAsOf)
	if err != nil {
		t.Fatalf("CalculateTaxPosition: %v", err)
	}

	// 59000 - 12570 = 46430 taxable; less 3000 = 43430
	// Tax: 7540 + (43430 - 37700) × 0.40 = 9832
	// Interest on top: 2000 × 0.40 = 800; plus 150 direct
	assertTaxEquals(t, 59000, result.TotalIncome, "total income")
	assertTaxEquals(t, 43430, result.TaxableAfterDeductions, "taxable after deductions")
	assertTaxEquals(t, 9832, result.TaxDueOnIncome, "tax due on income")
	assertTaxEquals(t, 950, result.AdjustmentTax, "adjustment tax")
	assertTaxEquals(t, 10782, result.FinalTaxDue, "final tax due")

	// Salary assumed balanced, consulting untaxed: the gap is the
	// consulting tax plus the adjustments
	salaryDue := result.Sources[0].TaxDue
	assertTaxEquals(t, salaryDue, result.TotalTaxPaid, "only the salary withholding is assumed paid")
	assertTaxEquals(t, result.TotalTaxPaid-result.FinalTaxDue, result.NetPosition, "net position identity")
	if result.NetPosition >= 0 {
		t.Errorf("expected tax owed, got net position %v", result.NetPosition)
	}
}
