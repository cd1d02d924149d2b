package main

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// TaxYearConfig fixes the tax year the estimate runs against.
// Dates are YYYY-MM-DD. The UK tax year runs 6 April to 5 April.
type TaxYearConfig struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// GetStartDate returns the tax year start, defaulting to 6 April 2024
func (ty *TaxYearConfig) GetStartDate() time.Time {
	if t, err := time.Parse("2006-01-02", ty.Start); err == nil {
		return normalizeDate(t)
	}
	return time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC)
}

// GetEndDate returns the tax year end, derived from the start when unset
func (ty *TaxYearConfig) GetEndDate() time.Time {
	if t, err := time.Parse("2006-01-02", ty.End); err == nil {
		return normalizeDate(t)
	}
	return TaxYearEnd(ty.GetStartDate())
}

// TaxConfig holds the personal allowance and its taper thresholds.
// These values are set by HMRC and may change with each tax year.
type TaxConfig struct {
	// PersonalAllowance is the amount that can be earned tax-free (2024/25: £12,570)
	PersonalAllowance float64 `yaml:"personal_allowance" json:"personal_allowance"`
	// TaperThreshold is the income level above which the allowance starts to reduce (2024/25: £100,000)
	TaperThreshold float64 `yaml:"taper_threshold" json:"taper_threshold"`
	// TaperLimit is the income level at which the allowance is fully removed (2024/25: £125,140)
	TaperLimit float64 `yaml:"taper_limit" json:"taper_limit"`
}

// GetPersonalAllowance returns the personal allowance, using the 2024/25 default if not set
func (tc *TaxConfig) GetPersonalAllowance() float64 {
	if tc.PersonalAllowance <= 0 {
		return 12570.0
	}
	return tc.PersonalAllowance
}

// GetTaperThreshold returns the taper threshold, using the 2024/25 default if not set
func (tc *TaxConfig) GetTaperThreshold() float64 {
	if tc.TaperThreshold <= 0 {
		return 100000.0
	}
	return tc.TaperThreshold
}

// GetTaperLimit returns the income at which the allowance is fully
// removed. When unset it is derived from the threshold and allowance:
// the allowance falls by £1 per £2 of income, so it reaches zero at
// threshold + 2 × allowance.
func (tc *TaxConfig) GetTaperLimit() float64 {
	if tc.TaperLimit <= 0 {
		return tc.GetTaperThreshold() + 2*tc.GetPersonalAllowance()
	}
	return tc.TaperLimit
}

// TaxBandConfig is one band as written in YAML. A zero or omitted
// limit marks the unbounded top band.
type TaxBandConfig struct {
	Name  string  `yaml:"name" json:"name"`
	Limit float64 `yaml:"limit,omitempty" json:"limit,omitempty"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// BandTableConfig is a named progressive rate schedule. Band tables
// are data, not types: callers pick a table value (e.g. "standard" or
// "scottish"), no subclassing involved.
type BandTableConfig struct {
	Name  string          `yaml:"name" json:"name"`
	Bands []TaxBandConfig `yaml:"bands" json:"bands"`
}

// SourceConfig is an income source as written in a scenario file
type SourceConfig struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	IncomeToDate    float64  `yaml:"income_to_date" json:"income_to_date"`
	Regular         bool     `yaml:"regular" json:"regular"`
	Start           string   `yaml:"start,omitempty" json:"start,omitempty"` // YYYY-MM-DD
	End             string   `yaml:"end,omitempty" json:"end,omitempty"`
	PeriodsPaid     *int     `yaml:"periods_paid,omitempty" json:"periods_paid,omitempty"`
	ProjectedIncome *float64 `yaml:"projected_income,omitempty" json:"projected_income,omitempty"`
	TaxPaid         *float64 `yaml:"tax_paid,omitempty" json:"tax_paid,omitempty"`
}

// DeductionConfig is a deduction as written in a scenario file
type DeductionConfig struct {
	Description string  `yaml:"description" json:"description"`
	Amount      float64 `yaml:"amount" json:"amount"`
	Category    string  `yaml:"category" json:"category"`
}

// AdjustmentConfig is an adjustment as written in a scenario file.
// Kind is "direct_tax" or "taxable_income".
type AdjustmentConfig struct {
	Description string  `yaml:"description" json:"description"`
	Amount      float64 `yaml:"amount" json:"amount"`
	Kind        string  `yaml:"kind" json:"kind"`
}

// ScenarioConfig describes one taxpayer situation to estimate
type ScenarioConfig struct {
	AsOf        string             `yaml:"as_of,omitempty" json:"as_of,omitempty"` // YYYY-MM-DD; empty = today
	BandTable   string             `yaml:"band_table,omitempty" json:"band_table,omitempty"`
	Sources     []SourceConfig     `yaml:"sources" json:"sources"`
	Deductions  []DeductionConfig  `yaml:"deductions,omitempty" json:"deductions,omitempty"`
	Adjustments []AdjustmentConfig `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`
}

// Config holds the complete configuration: the tax year's constants,
// the named band tables and the scenario to estimate
type Config struct {
	TaxYear      TaxYearConfig     `yaml:"tax_year" json:"tax_year"`
	Tax          TaxConfig         `yaml:"tax" json:"tax"`
	BandTables   []BandTableConfig `yaml:"band_tables" json:"band_tables"`
	DefaultTable string            `yaml:"default_table" json:"default_table"`
	Scenario     ScenarioConfig    `yaml:"scenario" json:"scenario"`
}

// BandTable resolves a named band table to engine bands. An empty name
// selects the configured default table (or the first table listed).
// An unknown name is an input error, not a panic: the selector arrives
// from the caller's UI.
func (c *Config) BandTable(name string) (string, []TaxBand, error) {
	if len(c.BandTables) == 0 {
		return "", nil, fmt.Errorf("no band tables configured")
	}
	if name == "" {
		name = c.DefaultTable
	}
	if name == "" {
		name = c.BandTables[0].Name
	}

	for _, table := range c.BandTables {
		if table.Name != name {
			continue
		}
		bands := make([]TaxBand, len(table.Bands))
		for i, band := range table.Bands {
			limit := band.Limit
			if limit <= 0 {
				limit = math.Inf(1)
			}
			bands[i] = TaxBand{Name: band.Name, Limit: limit, Rate: band.Rate}
		}
		if err := validateBands(bands); err != nil {
			return "", nil, fmt.Errorf("band table %q: %w", name, err)
		}
		return name, bands, nil
	}
	return "", nil, fmt.Errorf("unknown band table %q", name)
}

// ScenarioInputs converts the scenario section into engine inputs.
// Malformed dates or adjustment kinds are reported as errors so the
// CLI can point at the offending entry.
func (c *Config) ScenarioInputs() ([]IncomeSource, []Deduction, []Adjustment, CalculationOptions, error) {
	var opts CalculationOptions
	opts.BandTable = c.Scenario.BandTable
	if c.Scenario.AsOf != "" {
		t, err := time.Parse("2006-01-02", c.Scenario.AsOf)
		if err != nil {
			return nil, nil, nil, opts, fmt.Errorf("scenario as_of: %w", err)
		}
		opts.AsOf = normalizeDate(t)
	}

	parseDate := func(field, value string) (time.Time, error) {
		if value == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", field, err)
		}
		return normalizeDate(t), nil
	}

	sources := make([]IncomeSource, len(c.Scenario.Sources))
	for i, sc := range c.Scenario.Sources {
		start, err := parseDate(fmt.Sprintf("source %q start", sc.Name), sc.Start)
		if err != nil {
			return nil, nil, nil, opts, err
		}
		end, err := parseDate(fmt.Sprintf("source %q end", sc.Name), sc.End)
		if err != nil {
			return nil, nil, nil, opts, err
		}
		sources[i] = IncomeSource{
			ID:              sc.ID,
			Name:            sc.Name,
			IncomeToDate:    sc.IncomeToDate,
			IsRegular:       sc.Regular,
			StartDate:       start,
			EndDate:         end,
			PeriodsPaid:     sc.PeriodsPaid,
			ProjectedIncome: sc.ProjectedIncome,
			TaxPaid:         sc.TaxPaid,
		}
	}

	deductions := make([]Deduction, len(c.Scenario.Deductions))
	for i, dc := range c.Scenario.Deductions {
		deductions[i] = Deduction{Description: dc.Description, Amount: dc.Amount, Category: dc.Category}
	}

	adjustments := make([]Adjustment, len(c.Scenario.Adjustments))
	for i, ac := range c.Scenario.Adjustments {
		var kind AdjustmentKind
		switch ac.Kind {
		case "direct_tax", "direct":
			kind = DirectTax
		case "taxable_income", "taxable":
			kind = TaxableIncome
		default:
			return nil, nil, nil, opts, fmt.Errorf("adjustment %q: unknown kind %q", ac.Description, ac.Kind)
		}
		adjustments[i] = Adjustment{Description: ac.Description, Amount: ac.Amount, Kind: kind}
	}

	return sources, deductions, adjustments, opts, nil
}

// LoadConfig loads configuration from a YAML file.
// It handles percentage format (e.g., "20%" -> 0.20).
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadDefaultConfig loads the default configuration from the embedded
// default-config.yaml (compiled into the binary)
func LoadDefaultConfig() (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(defaultConfigYAML)), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// preprocessPercentages converts percentage values like "20%" to decimal "0.2"
func preprocessPercentages(content string) string {
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}
