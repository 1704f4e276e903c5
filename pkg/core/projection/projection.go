// Package projection produces multi-year wealth and tax projections for one
// property. Every row is derivable independently from the year index and the
// base inputs: loan balance comes from the closed-form formula, value and
// rent from compound growth, so callers can random-access any year without
// replaying prior rows.
package projection

import (
	"math"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
)

// DefaultYears is the standard projection horizon.
const DefaultYears = 10

// YearProjection is one year of the wealth projection. Year 1 is the first
// full year of ownership.
type YearProjection struct {
	Year               int     `json:"year"`
	PropertyValue      float64 `json:"property_value"`
	AnnualRent         float64 `json:"annual_rent"`
	OperatingExpenses  float64 `json:"operating_expenses"` // annual
	AnnualCashFlow     float64 `json:"annual_cash_flow"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
	LoanBalance        float64 `json:"loan_balance"`
	Equity             float64 `json:"equity"`
	TotalWealth        float64 `json:"total_wealth"` // cumulative cash flow + equity
}

// ProjectYears runs the year-by-year projection: value compounds at the
// appreciation rate, rent at the rent-growth rate, percentage expenses track
// the grown rent and fixed expenses compound at the expense-growth rate.
func ProjectYears(in metrics.AnalyticsInputs, years int) []YearProjection {
	if years <= 0 {
		years = DefaultYears
	}

	rows := make([]YearProjection, 0, years)
	var cumulative float64

	for year := 1; year <= years; year++ {
		row := ProjectYear(in, year)
		// Cumulative cash flow is the only running quantity; everything else
		// in the row is independently derivable.
		cumulative += row.AnnualCashFlow
		row.CumulativeCashFlow = cumulative
		row.TotalWealth = cumulative + row.Equity
		rows = append(rows, row)
	}
	return rows
}

// ProjectYear derives a single year's row (cumulative fields zero) without
// replaying prior years.
func ProjectYear(in metrics.AnalyticsInputs, year int) YearProjection {
	growthV := math.Pow(1+in.AppreciationRate/100, float64(year))
	growthR := math.Pow(1+in.RentGrowthRate/100, float64(year-1))
	growthE := math.Pow(1+in.ExpenseGrowthRate/100, float64(year-1))

	value := in.PurchasePrice * growthV
	monthlyRent := in.MonthlyRent * growthR
	otherIncome := in.OtherMonthlyIncome * growthR
	gross := monthlyRent + otherIncome

	// Percentage expenses recompute at the grown rent; fixed costs inflate
	// at the expense growth rate.
	vacancy := gross * in.VacancyRate / 100
	maintenance := monthlyRent * in.MaintenanceRate / 100
	management := monthlyRent * in.ManagementRate / 100
	fixed := (in.AnnualPropertyTax/12 + in.AnnualInsurance/12 + in.MonthlyHOA) * growthE
	monthlyExpenses := vacancy + maintenance + management + fixed

	loan := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	pi := mortgage.MonthlyPayment(loan, in.InterestRate, in.LoanTermYears)
	if year > in.LoanTermYears {
		// Loan retired: the balance formula already clamps to 0, and the
		// payment stops with it.
		pi = 0
	}
	balance := mortgage.RemainingBalance(loan, in.InterestRate, in.LoanTermYears, float64(year))

	annualCF := (gross - monthlyExpenses - pi) * 12

	return YearProjection{
		Year:              year,
		PropertyValue:     value,
		AnnualRent:        monthlyRent * 12,
		OperatingExpenses: monthlyExpenses * 12,
		AnnualCashFlow:    annualCF,
		LoanBalance:       balance,
		Equity:            value - balance,
	}
}

// NOIForYear returns the projected annual NOI for a given year, used by the
// tax engine and the exit model.
func NOIForYear(in metrics.AnalyticsInputs, year int) float64 {
	row := ProjectYear(in, year)
	return row.AnnualRent + in.OtherMonthlyIncome*12*math.Pow(1+in.RentGrowthRate/100, float64(year-1)) -
		row.OperatingExpenses
}
