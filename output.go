package main

import (
	"fmt"
	"strings"
)

// FormatMoney formats a float as an abbreviated currency string
func FormatMoney(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("£%.2fM", amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("£%.0fk", amount/1000)
	}
	return fmt.Sprintf("£%.0f", amount)
}

// FormatMoneyFull formats a float as full currency with pence
func FormatMoneyFull(amount float64) string {
	return fmt.Sprintf("£%.2f", amount)
}

// PrintHeader prints the configuration summary
func PrintHeader(config *Config) {
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                      IN-YEAR INCOME TAX POSITION ESTIMATE                    ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	yearStart := config.TaxYear.GetStartDate()
	fmt.Printf("  Tax year %s (%s to %s)\n", TaxYearLabel(yearStart.Year()),
		yearStart.Format("2 Jan 2006"), config.TaxYear.GetEndDate().Format("2 Jan 2006"))
	fmt.Printf("  Personal allowance %s, tapered from %s to nil at %s\n",
		FormatMoney(config.Tax.GetPersonalAllowance()),
		FormatMoney(config.Tax.GetTaperThreshold()),
		FormatMoney(config.Tax.GetTaperLimit()))
	fmt.Println()
}

// PrintResult prints the calculation summary and per-source breakdown.
// When details is true the full derivation trail follows.
func PrintResult(result *CalculationResult, details bool) {
	fmt.Printf("  As of %s, band table %q\n", result.AsOf.Format("2 Jan 2006"), result.BandTable)
	fmt.Println()

	fmt.Printf("  %-24s %12s %12s %12s %12s\n", "Source", "Income", "Allowance", "Tax Due", "Tax Paid")
	fmt.Printf("  %s\n", strings.Repeat("─", 76))
	for _, src := range result.Sources {
		name := src.Name
		if src.Projected {
			name += " *"
		}
		paid := FormatMoneyFull(src.TaxPaid)
		if src.TaxPaidAssumed {
			paid += " (PAYE)"
		}
		fmt.Printf("  %-24s %12s %12s %12s %12s\n", name,
			FormatMoneyFull(src.Income), FormatMoneyFull(src.AllowanceUsed),
			FormatMoneyFull(src.TaxDue), paid)
	}
	fmt.Printf("  %s\n", strings.Repeat("─", 76))
	fmt.Println("  * projected figure")
	fmt.Println()

	fmt.Printf("  Total income:              %12s\n", FormatMoneyFull(result.TotalIncome))
	fmt.Printf("  Personal allowance:        %12s\n", FormatMoneyFull(result.PersonalAllowance))
	fmt.Printf("  Taxable income:            %12s\n", FormatMoneyFull(result.TaxableIncome))
	if result.TotalDeductions > 0 {
		fmt.Printf("  Deductions:                %12s\n", FormatMoneyFull(result.TotalDeductions))
		fmt.Printf("  Taxable after deductions:  %12s\n", FormatMoneyFull(result.TaxableAfterDeductions))
	}
	fmt.Printf("  Tax due on income:         %12s\n", FormatMoneyFull(result.TaxDueOnIncome))
	if result.AdjustmentTax != 0 {
		fmt.Printf("  Adjustment tax:            %12s\n", FormatMoneyFull(result.AdjustmentTax))
	}
	fmt.Printf("  Final tax due:             %12s\n", FormatMoneyFull(result.FinalTaxDue))
	fmt.Printf("  Total tax paid:            %12s\n", FormatMoneyFull(result.TotalTaxPaid))
	fmt.Printf("  Marginal rate:             %11.0f%%\n", result.MarginalRate*100)
	fmt.Println()

	switch {
	case result.NetPosition > 0:
		fmt.Printf("  Net position: %s overpaid (refund due)\n", FormatMoneyFull(result.NetPosition))
	case result.NetPosition < 0:
		fmt.Printf("  Net position: %s owed\n", FormatMoneyFull(-result.NetPosition))
	default:
		fmt.Println("  Net position: balanced")
	}

	if details {
		fmt.Println()
		fmt.Println("  Derivation:")
		for i, step := range result.Steps {
			fmt.Printf("  %2d. %s\n", i+1, step)
		}
	}
	fmt.Println()
}
