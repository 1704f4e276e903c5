package strategy

import (
	"fmt"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
)

// avgDaysPerMonth is the revenue-model month length (365.25 / 12).
const avgDaysPerMonth = 30.4

// ShortTermRentalInputs extends the base property with the nightly revenue
// model. Occupancy is a whole percentage.
type ShortTermRentalInputs struct {
	Base metrics.AnalyticsInputs `json:"base"`

	NightlyRate      float64 `json:"nightly_rate"`
	OccupancyPercent float64 `json:"occupancy_percent"`
	AvgStayNights    float64 `json:"avg_stay_nights"`
	CleaningFee      float64 `json:"cleaning_fee"`      // charged per stay
	CleaningCost     float64 `json:"cleaning_cost"`     // paid per turn
	MonthlyUtilities float64 `json:"monthly_utilities"` // owner-paid for STR
	PlatformFeeRate  float64 `json:"platform_fee_rate"` // % of booking revenue
}

// ShortTermRentalMetrics is the STR-specific metric shape.
type ShortTermRentalMetrics struct {
	OccupiedNights    float64 `json:"occupied_nights"` // per month
	StaysPerMonth     float64 `json:"stays_per_month"`
	MonthlyRevenue    float64 `json:"monthly_revenue"` // bookings + cleaning fees
	CleaningIncome    float64 `json:"cleaning_income"`
	CleaningExpense   float64 `json:"cleaning_expense"`
	PlatformFees      float64 `json:"platform_fees"`
	OperatingExpenses float64 `json:"operating_expenses"` // monthly, incl. cleaning
	MonthlyPI         float64 `json:"monthly_pi"`
	MonthlyCashFlow   float64 `json:"monthly_cash_flow"`
	AnnualCashFlow    float64 `json:"annual_cash_flow"`
	CashOnCash        float64 `json:"cash_on_cash"`
	RevenueVsLTR      float64 `json:"revenue_vs_ltr"` // booking revenue / market rent
}

// CalculateShortTermRentalMetrics prices the nightly model: booking revenue is
// nightly rate × occupied nights, cleaning fees net against per-turn cost, and
// the long-term expense profile still applies underneath (taxes, insurance,
// maintenance on the structure).
func CalculateShortTermRentalMetrics(in ShortTermRentalInputs) ShortTermRentalMetrics {
	var m ShortTermRentalMetrics

	m.OccupiedNights = avgDaysPerMonth * in.OccupancyPercent / 100
	if in.AvgStayNights > 0 {
		m.StaysPerMonth = m.OccupiedNights / in.AvgStayNights
	}

	bookingRevenue := in.NightlyRate * m.OccupiedNights
	m.CleaningIncome = in.CleaningFee * m.StaysPerMonth
	m.CleaningExpense = in.CleaningCost * m.StaysPerMonth
	m.MonthlyRevenue = bookingRevenue + m.CleaningIncome
	m.PlatformFees = bookingRevenue * in.PlatformFeeRate / 100

	base := in.Base
	maintenance := base.MonthlyRent * base.MaintenanceRate / 100
	management := base.MonthlyRent * base.ManagementRate / 100
	fixed := base.AnnualPropertyTax/12 + base.AnnualInsurance/12 + base.MonthlyHOA
	m.OperatingExpenses = maintenance + management + fixed +
		m.CleaningExpense + m.PlatformFees + in.MonthlyUtilities

	loan := base.PurchasePrice * (1 - base.DownPaymentPercent/100)
	m.MonthlyPI = mortgage.MonthlyPayment(loan, base.InterestRate, base.LoanTermYears)

	m.MonthlyCashFlow = m.MonthlyRevenue - m.OperatingExpenses - m.MonthlyPI
	m.AnnualCashFlow = m.MonthlyCashFlow * 12

	cashRequired := base.PurchasePrice * (base.DownPaymentPercent + base.ClosingCostPercent) / 100
	if cashRequired > 0 {
		m.CashOnCash = m.AnnualCashFlow / cashRequired * 100
	}
	if base.MonthlyRent > 0 {
		m.RevenueVsLTR = bookingRevenue / base.MonthlyRent
	}

	return m
}

// GenerateShortTermRentalInsights produces up to four typed observations.
func GenerateShortTermRentalInsights(in ShortTermRentalInputs, m ShortTermRentalMetrics) []Insight {
	var insights []Insight

	if m.RevenueVsLTR >= 2 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Nightly model grosses %.1fx the long-term rent", m.RevenueVsLTR)})
	}
	if in.OccupancyPercent < 50 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Occupancy of %.0f%% is below the 50%% viability floor", in.OccupancyPercent)})
	} else if in.OccupancyPercent >= 70 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Occupancy of %.0f%% is strong for a short-term market", in.OccupancyPercent)})
	}
	if m.MonthlyCashFlow < 0 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Loses $%.0f/month even at the stated occupancy", -m.MonthlyCashFlow)})
	}
	if m.CleaningIncome < m.CleaningExpense {
		insights = append(insights, Insight{InsightTip,
			"Cleaning fee does not cover the per-turn cost; reprice the fee"})
	}

	return capInsights(insights)
}

// CalculateShortTermRentalScore applies the weighted rubric:
// cash flow 35, occupancy 25, cash-on-cash 20, revenue multiple 20.
func CalculateShortTermRentalScore(m ShortTermRentalMetrics, in ShortTermRentalInputs) float64 {
	score := ratioScore(m.MonthlyCashFlow, 600, 35) +
		ratioScore(in.OccupancyPercent, 75, 25) +
		ratioScore(m.CashOnCash, 12, 20) +
		ratioScore(m.RevenueVsLTR, 2.5, 20)
	return clampScore(score)
}

// AnalyzeShortTermRental runs the full pipeline. Viable requires positive
// cash flow and at least 50% occupancy.
func AnalyzeShortTermRental(in ShortTermRentalInputs) Analysis {
	m := CalculateShortTermRentalMetrics(in)
	score := CalculateShortTermRentalScore(m, in)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: ShortTermRental,
		Name:     ShortTermRental.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateShortTermRentalInsights(in, m),
		IsViable: m.MonthlyCashFlow > 0 && in.OccupancyPercent >= 50,
	}
}
