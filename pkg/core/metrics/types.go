// Package metrics turns long-term-rental assumptions into cash-flow and
// return metrics. All functions are pure: inputs in, derived values out, no
// shared state. Rates are whole-number percentages (20 means 20%).
package metrics

// AnalyticsInputs is one immutable snapshot of a property's assumptions.
// Callers own a mutable copy and hand the engine a fresh value per edit;
// nothing in the engine mutates it.
type AnalyticsInputs struct {
	PurchasePrice      float64 `json:"purchase_price" yaml:"purchase_price"`
	DownPaymentPercent float64 `json:"down_payment_percent" yaml:"down_payment_percent"`
	ClosingCostPercent float64 `json:"closing_cost_percent" yaml:"closing_cost_percent"`
	InterestRate       float64 `json:"interest_rate" yaml:"interest_rate"`
	LoanTermYears      int     `json:"loan_term_years" yaml:"loan_term_years"`

	MonthlyRent        float64 `json:"monthly_rent" yaml:"monthly_rent"`
	OtherMonthlyIncome float64 `json:"other_monthly_income" yaml:"other_monthly_income"`

	VacancyRate     float64 `json:"vacancy_rate" yaml:"vacancy_rate"`         // % of gross income
	MaintenanceRate float64 `json:"maintenance_rate" yaml:"maintenance_rate"` // % of rent
	ManagementRate  float64 `json:"management_rate" yaml:"management_rate"`   // % of rent

	AnnualPropertyTax float64 `json:"annual_property_tax" yaml:"annual_property_tax"`
	AnnualInsurance   float64 `json:"annual_insurance" yaml:"annual_insurance"`
	MonthlyHOA        float64 `json:"monthly_hoa" yaml:"monthly_hoa"`

	AppreciationRate  float64 `json:"appreciation_rate" yaml:"appreciation_rate"`
	RentGrowthRate    float64 `json:"rent_growth_rate" yaml:"rent_growth_rate"`
	ExpenseGrowthRate float64 `json:"expense_growth_rate" yaml:"expense_growth_rate"`
}

// CalculatedMetrics is a pure function of AnalyticsInputs, recomputed whenever
// inputs change. No independent lifecycle, no caching inside the engine.
type CalculatedMetrics struct {
	// Acquisition
	DownPayment       float64 `json:"down_payment"`
	ClosingCosts      float64 `json:"closing_costs"`
	LoanAmount        float64 `json:"loan_amount"`
	TotalCashRequired float64 `json:"total_cash_required"`

	// Debt service
	MonthlyPI         float64 `json:"monthly_pi"`
	AnnualDebtService float64 `json:"annual_debt_service"`

	// Income & expenses (monthly)
	GrossMonthlyIncome      float64 `json:"gross_monthly_income"`
	MonthlyOperatingExpense float64 `json:"monthly_operating_expense"`

	// Cash flow
	MonthlyCashFlow float64 `json:"monthly_cash_flow"`
	AnnualCashFlow  float64 `json:"annual_cash_flow"`

	// Return ratios
	NOI                 float64 `json:"noi"` // annual
	CapRate             float64 `json:"cap_rate"`
	CashOnCash          float64 `json:"cash_on_cash"`
	DSCR                float64 `json:"dscr"`
	OnePercentRule      float64 `json:"one_percent_rule"` // rent/price × 100
	GrossRentMultiplier float64 `json:"gross_rent_multiplier"`

	// Equity
	YearOneEquityGrowth float64 `json:"year_one_equity_growth"`

	// Break-even points
	BreakEvenRent    float64 `json:"break_even_rent"`
	BreakEvenVacancy float64 `json:"break_even_vacancy"` // %
}
