package metrics

import (
	"math"

	"investment_analytics/pkg/core/mortgage"
)

// MaxPriceResolution is the bisection resolution for MaxAffordablePrice.
// The search terminates once the interval narrows below this.
const MaxPriceResolution = 1000.0

// =============================================================================
// CORE CALCULATOR
// =============================================================================

// Calculate derives the full metric set from one input snapshot.
//
// Division-by-zero guards are explicit rather than exceptional: a live-tuning
// UI sliding price or rent through zero wants 0 / +Inf sentinels, not a panic.
func Calculate(in AnalyticsInputs) CalculatedMetrics {
	var m CalculatedMetrics

	// Acquisition stack
	m.DownPayment = in.PurchasePrice * in.DownPaymentPercent / 100
	m.ClosingCosts = in.PurchasePrice * in.ClosingCostPercent / 100
	m.LoanAmount = in.PurchasePrice - m.DownPayment
	m.TotalCashRequired = m.DownPayment + m.ClosingCosts

	// Debt service
	m.MonthlyPI = mortgage.MonthlyPayment(m.LoanAmount, in.InterestRate, in.LoanTermYears)
	m.AnnualDebtService = m.MonthlyPI * 12

	// Income & operating expenses
	m.GrossMonthlyIncome = in.MonthlyRent + in.OtherMonthlyIncome
	m.MonthlyOperatingExpense = monthlyOperatingExpense(in)

	// Cash flow
	m.MonthlyCashFlow = m.GrossMonthlyIncome - m.MonthlyOperatingExpense - m.MonthlyPI
	m.AnnualCashFlow = m.MonthlyCashFlow * 12

	// NOI: income minus operating expenses, before debt service
	m.NOI = (m.GrossMonthlyIncome - m.MonthlyOperatingExpense) * 12

	// Ratios
	m.CapRate = safePct(m.NOI, in.PurchasePrice)
	m.CashOnCash = safePct(m.AnnualCashFlow, m.TotalCashRequired)
	m.DSCR = safeDivInf(m.NOI, m.AnnualDebtService)
	m.OnePercentRule = safePct(in.MonthlyRent, in.PurchasePrice)
	m.GrossRentMultiplier = safeDiv(in.PurchasePrice, in.MonthlyRent*12)

	// Year-1 equity: appreciation plus principal paid across the first 12
	// payments. Principal uses the iterative split since the schedule shifts
	// month to month.
	appreciation := in.PurchasePrice * in.AppreciationRate / 100
	principalPaid := mortgage.PrincipalPaidThroughMonth(m.LoanAmount, in.InterestRate, in.LoanTermYears, 12)
	m.YearOneEquityGrowth = appreciation + principalPaid

	m.BreakEvenRent = BreakEvenRent(in)
	m.BreakEvenVacancy = BreakEvenVacancy(in)

	return m
}

// monthlyOperatingExpense sums percentage-based and fixed expenses for one
// month at the input rent.
func monthlyOperatingExpense(in AnalyticsInputs) float64 {
	gross := in.MonthlyRent + in.OtherMonthlyIncome
	vacancy := gross * in.VacancyRate / 100
	maintenance := in.MonthlyRent * in.MaintenanceRate / 100
	management := in.MonthlyRent * in.ManagementRate / 100
	fixed := in.AnnualPropertyTax/12 + in.AnnualInsurance/12 + in.MonthlyHOA
	return vacancy + maintenance + management + fixed
}

// =============================================================================
// BREAK-EVEN POINTS
// =============================================================================

// BreakEvenRent solves for the rent at which monthly cash flow is zero.
//
// Cash flow is linear in rent once the percentage expenses are factored out:
//
//	CF = rent × (1 - (v + m + g)/100) + other × (1 - v/100) - fixed - P&I
//
// A percentage load of 100% or more means no rent can break even: +Inf.
func BreakEvenRent(in AnalyticsInputs) float64 {
	loan := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	pi := mortgage.MonthlyPayment(loan, in.InterestRate, in.LoanTermYears)
	fixed := in.AnnualPropertyTax/12 + in.AnnualInsurance/12 + in.MonthlyHOA

	pctLoad := (in.VacancyRate + in.MaintenanceRate + in.ManagementRate) / 100
	if pctLoad >= 1 {
		return math.Inf(1)
	}

	otherNet := in.OtherMonthlyIncome * (1 - in.VacancyRate/100)
	rent := (fixed + pi - otherNet) / (1 - pctLoad)
	if rent < 0 {
		return 0
	}
	return rent
}

// BreakEvenVacancy solves for the vacancy rate (%) at which monthly cash flow
// is zero, holding rent fixed. Clamped to [0, 100]; a property that cannot
// break even at full occupancy reports 0.
func BreakEvenVacancy(in AnalyticsInputs) float64 {
	gross := in.MonthlyRent + in.OtherMonthlyIncome
	if gross == 0 {
		return 0
	}

	loan := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	pi := mortgage.MonthlyPayment(loan, in.InterestRate, in.LoanTermYears)
	maintenance := in.MonthlyRent * in.MaintenanceRate / 100
	management := in.MonthlyRent * in.ManagementRate / 100
	fixed := in.AnnualPropertyTax/12 + in.AnnualInsurance/12 + in.MonthlyHOA

	// gross×(1 - v/100) = maintenance + management + fixed + P&I
	v := 100 * (1 - (maintenance+management+fixed+pi)/gross)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MaxAffordablePrice finds the highest purchase price that still produces the
// target monthly cash flow, holding every other assumption fixed. Bounded
// bisection at $1,000 resolution; cash flow is monotonically decreasing in
// price, so the search is stable.
func MaxAffordablePrice(in AnalyticsInputs, targetMonthlyCF float64) float64 {
	cashFlowAt := func(price float64) float64 {
		probe := in
		probe.PurchasePrice = price
		return Calculate(probe).MonthlyCashFlow
	}

	lo := 0.0
	hi := in.PurchasePrice * 2
	if hi <= 0 {
		hi = 1_000_000
	}

	// Expand the ceiling if even the starting price meets the target.
	for cashFlowAt(hi) >= targetMonthlyCF && hi < 100_000_000 {
		hi *= 2
	}
	if cashFlowAt(lo) < targetMonthlyCF {
		return 0 // unreachable even at a free property
	}

	for hi-lo > MaxPriceResolution {
		mid := (lo + hi) / 2
		if cashFlowAt(mid) >= targetMonthlyCF {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// =============================================================================
// GUARDS
// =============================================================================

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func safePct(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// safeDivInf reports +Inf on a zero denominator. Used where "no debt" is the
// degenerate case and an infinite coverage ratio is the honest answer.
func safeDivInf(numerator, denominator float64) float64 {
	if denominator == 0 {
		return math.Inf(1)
	}
	return numerator / denominator
}
