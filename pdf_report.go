package main

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// pdfTextReplacer maps the non-ASCII characters the reports use to the
// Latin-1 encoding the standard PDF fonts expect: £ is 0xA3 and × is
// 0xD7 in Latin-1; the em dash has no Latin-1 slot and falls back to a
// plain hyphen.
var pdfTextReplacer = strings.NewReplacer("£", "\xa3", "×", "\xd7", "—", "-")

// pdfText converts UTF-8 text to PDF-safe Latin-1
func pdfText(s string) string {
	return pdfTextReplacer.Replace(s)
}

// FormatMoneyPDF formats money for PDF output (handles £ encoding)
func FormatMoneyPDF(amount float64) string {
	return pdfText(FormatMoneyFull(amount))
}

// GeneratePDFReport writes a printable statement of the calculation:
// the headline position, the per-source breakdown and the full
// derivation trail.
func GeneratePDFReport(config *Config, result *CalculationResult, filename string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	yearStart := config.TaxYear.GetStartDate()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, pdfText(fmt.Sprintf("In-Year Tax Position — %s", TaxYearLabel(yearStart.Year()))),
		"", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, pdfText(fmt.Sprintf("As of %s, band table %q",
		result.AsOf.Format("2 January 2006"), result.BandTable)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Per-source breakdown
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Income Sources", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	widths := []float64{50, 28, 28, 28, 28, 28}
	headers := []string{"Source", "Income", "Allowance", "Tax Due", "Tax Paid", "Difference"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, src := range result.Sources {
		name := src.Name
		if src.Projected {
			name += " (projected)"
		}
		pdf.CellFormat(widths[0], 7, pdfText(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, FormatMoneyPDF(src.Income), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, FormatMoneyPDF(src.AllowanceUsed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, FormatMoneyPDF(src.TaxDue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, FormatMoneyPDF(src.TaxPaid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, FormatMoneyPDF(src.Difference), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Headline figures
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	summary := []struct {
		label  string
		amount float64
	}{
		{"Total income", result.TotalIncome},
		{"Personal allowance", result.PersonalAllowance},
		{"Taxable income", result.TaxableIncome},
		{"Deductions", result.TotalDeductions},
		{"Taxable after deductions", result.TaxableAfterDeductions},
		{"Tax due on income", result.TaxDueOnIncome},
		{"Adjustment tax", result.AdjustmentTax},
		{"Final tax due", result.FinalTaxDue},
		{"Total tax paid", result.TotalTaxPaid},
	}
	for _, row := range summary {
		pdf.CellFormat(90, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, FormatMoneyPDF(row.amount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	var position string
	switch {
	case result.NetPosition > 0:
		position = fmt.Sprintf("Net position: %s overpaid (refund due)", FormatMoneyFull(result.NetPosition))
	case result.NetPosition < 0:
		position = fmt.Sprintf("Net position: %s owed", FormatMoneyFull(-result.NetPosition))
	default:
		position = "Net position: balanced"
	}
	pdf.CellFormat(0, 8, pdfText(position), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Derivation trail
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Derivation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, step := range result.Steps {
		pdf.MultiCell(0, 5, pdfText(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
	}

	return pdf.OutputFileAndClose(filename)
}
