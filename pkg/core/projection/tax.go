package projection

import (
	"math"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
)

// Straight-line useful lives (years) for residential and commercial rental
// property, and the share of closing costs capitalized into basis.
const (
	ResidentialLifeYears   = 27.5
	CommercialLifeYears    = 39.0
	closingCostCapitalized = 0.60
)

// DepreciationConfig splits the purchase into land (not depreciable) and
// improvement value, and carries the owner's marginal rate.
type DepreciationConfig struct {
	LandValuePercent float64 `json:"land_value_percent" yaml:"land_value_percent"` // % of price held out of basis
	Commercial       bool    `json:"commercial" yaml:"commercial"`
	MarginalTaxRate  float64 `json:"marginal_tax_rate" yaml:"marginal_tax_rate"` // whole %
}

// AnnualTaxProjection is one year of the tax-adjusted projection.
type AnnualTaxProjection struct {
	Year             int     `json:"year"`
	NOI              float64 `json:"noi"`
	MortgageInterest float64 `json:"mortgage_interest"`
	Depreciation     float64 `json:"depreciation"`
	TaxableIncome    float64 `json:"taxable_income"`
	TaxLiability     float64 `json:"tax_liability"` // negative = benefit
	PreTaxCashFlow   float64 `json:"pre_tax_cash_flow"`
	AfterTaxCashFlow float64 `json:"after_tax_cash_flow"`
}

// DepreciableBasis is the improvement value plus the capitalized share of
// closing costs.
func DepreciableBasis(in metrics.AnalyticsInputs, cfg DepreciationConfig) float64 {
	improvements := in.PurchasePrice * (1 - cfg.LandValuePercent/100)
	closing := in.PurchasePrice * in.ClosingCostPercent / 100
	return improvements + closing*closingCostCapitalized
}

// AnnualDepreciation is the straight-line deduction per full year.
func AnnualDepreciation(in metrics.AnalyticsInputs, cfg DepreciationConfig) float64 {
	life := ResidentialLifeYears
	if cfg.Commercial {
		life = CommercialLifeYears
	}
	return DepreciableBasis(in, cfg) / life
}

// ProjectAnnualTax layers the depreciation and interest deductions onto the
// wealth projection. Taxable income = NOI − interest − depreciation; the
// principal portion of the payment is never deductible. Negative taxable
// income yields a tax benefit (negative liability), not zero.
func ProjectAnnualTax(in metrics.AnalyticsInputs, cfg DepreciationConfig, years int) []AnnualTaxProjection {
	if years <= 0 {
		years = DefaultYears
	}

	loan := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	depreciation := AnnualDepreciation(in, cfg)
	life := ResidentialLifeYears
	if cfg.Commercial {
		life = CommercialLifeYears
	}

	rows := make([]AnnualTaxProjection, 0, years)
	for year := 1; year <= years; year++ {
		base := ProjectYear(in, year)
		debtService := mortgage.AnnualDebtService(loan, in.InterestRate, in.LoanTermYears)
		if year > in.LoanTermYears {
			debtService = 0
		}
		noi := base.AnnualCashFlow + debtService
		interest := mortgage.InterestPaidInYear(loan, in.InterestRate, in.LoanTermYears, year)

		// Depreciation stops once the basis is exhausted.
		dep := depreciation
		if float64(year) > life {
			dep = 0
		}

		taxable := noi - interest - dep
		liability := taxable * cfg.MarginalTaxRate / 100

		rows = append(rows, AnnualTaxProjection{
			Year:             year,
			NOI:              noi,
			MortgageInterest: interest,
			Depreciation:     dep,
			TaxableIncome:    taxable,
			TaxLiability:     liability,
			PreTaxCashFlow:   base.AnnualCashFlow,
			AfterTaxCashFlow: base.AnnualCashFlow - liability,
		})
	}
	return rows
}

// AccumulatedDepreciation sums deductions over a hold period, capped at the
// depreciable basis.
func AccumulatedDepreciation(in metrics.AnalyticsInputs, cfg DepreciationConfig, holdYears int) float64 {
	life := ResidentialLifeYears
	if cfg.Commercial {
		life = CommercialLifeYears
	}
	years := math.Min(float64(holdYears), life)
	return AnnualDepreciation(in, cfg) * years
}
