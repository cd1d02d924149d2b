package main

import "time"

// IncomeSource represents one income stream for the tax year.
// Sources are supplied by the caller in the order tax bands should be
// consumed; the engine never mutates them.
type IncomeSource struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	IncomeToDate float64 `json:"income_to_date"` // gross amount received so far
	IsRegular    bool    `json:"is_regular"`     // regular (projected) vs one-off (face value)

	// StartDate and EndDate bound the employment window within the tax
	// year. Only meaningful for regular sources. Zero values default to
	// the tax year start and end respectively.
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`

	// PeriodsPaid is an explicit count of whole pay periods already
	// paid. When nil, periods worked are derived from the as-of date.
	PeriodsPaid *int `json:"periods_paid,omitempty"`

	// ProjectedIncome is a user-supplied annual figure that bypasses
	// all period maths when set.
	ProjectedIncome *float64 `json:"projected_income,omitempty"`

	// TaxPaid is the actual tax deducted so far. When nil, a regular
	// source is assumed to be balanced under PAYE (paid == due) and a
	// one-off source is assumed untaxed.
	TaxPaid *float64 `json:"tax_paid,omitempty"`
}

// Deduction is a flat reduction applied once to aggregate taxable
// income, after the personal allowance and before band tax.
type Deduction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// AdjustmentKind says how an adjustment affects the final position
type AdjustmentKind int

const (
	DirectTax     AdjustmentKind = iota // amount added straight to tax due
	TaxableIncome                       // amount is extra taxable income, taxed at the current marginal position
)

func (k AdjustmentKind) String() string {
	switch k {
	case DirectTax:
		return "Direct Tax"
	case TaxableIncome:
		return "Taxable Income"
	default:
		return "Unknown"
	}
}

// Adjustment is a supplementary amount folded in after all income
// sources and deductions. TaxableIncome adjustments stack: each is
// taxed at the marginal position implied by everything before it.
type Adjustment struct {
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Kind        AdjustmentKind `json:"kind"`
}

// SourceDetail is the per-source breakdown produced by the sequential
// allocator. The attribution depends on source order; the aggregate
// figures in CalculationResult do not.
type SourceDetail struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Income         float64 `json:"income"`    // projected or actual annual income
	Projected      bool    `json:"projected"` // true if Income was annualised or overridden
	Method         string  `json:"method"`    // how Income was arrived at
	AllowanceUsed  float64 `json:"allowance_used"`
	TaxableIncome  float64 `json:"taxable_income"`
	TaxDue         float64 `json:"tax_due"`
	TaxPaid        float64 `json:"tax_paid"`
	TaxPaidAssumed bool    `json:"tax_paid_assumed"` // true if TaxPaid is the balanced-PAYE default, not user input
	Difference     float64 `json:"difference"`       // TaxPaid - TaxDue; positive = overpaid
}

// CalculationResult is the fully materialized outcome of one
// calculation call. All monetary fields are rounded to 2dp; rounding
// happens only at the end of the calculation, never mid-fold.
type CalculationResult struct {
	AsOf      time.Time `json:"as_of"`
	BandTable string    `json:"band_table"`

	TotalIncome       float64        `json:"total_income"`
	PersonalAllowance float64        `json:"personal_allowance"`
	Sources           []SourceDetail `json:"sources"`

	TaxableIncome          float64 `json:"taxable_income"` // total income less allowance, floored at 0
	TotalDeductions        float64 `json:"total_deductions"`
	TaxableAfterDeductions float64 `json:"taxable_after_deductions"`

	TaxDueOnIncome float64 `json:"tax_due_on_income"`
	AdjustmentTax  float64 `json:"adjustment_tax"`
	FinalTaxDue    float64 `json:"final_tax_due"`

	TotalTaxPaid float64 `json:"total_tax_paid"`
	NetPosition  float64 `json:"net_position"` // paid - due; positive = refund due

	// MarginalRate is the rate applying to the next pound of taxable
	// income after all sources, deductions and adjustments.
	MarginalRate float64 `json:"marginal_rate"`

	// Steps is the human-readable derivation trail, in calculation order.
	Steps []string `json:"steps"`
}
