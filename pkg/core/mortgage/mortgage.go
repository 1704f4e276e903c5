// Package mortgage provides canonical amortization primitives.
// Every other engine package that touches debt service builds on these.
// Rates are whole-number percentages throughout (6.0 means 6%).
package mortgage

import (
	"math"
)

// =============================================================================
// PAYMENT & BALANCE
// =============================================================================

// MonthlyPayment calculates the standard amortizing payment.
//
// FORMULA: M = P × i × (1+i)^n / ((1+i)^n - 1)
//
// Where:
//   - P = principal
//   - i = monthly rate (annualRatePct / 100 / 12)
//   - n = total payments (termYears × 12)
//
// A zero or negative rate degrades to straight-line P / n. Non-finite
// results (degenerate term, rate overflow) return 0.
func MonthlyPayment(principal, annualRatePct float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	n := float64(termYears * 12)
	if annualRatePct <= 0 {
		return principal / n
	}
	i := annualRatePct / 100 / 12
	factor := math.Pow(1+i, n)
	payment := principal * i * factor / (factor - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0
	}
	return payment
}

// RemainingBalance calculates the loan balance after a number of elapsed years.
//
// FORMULA: B_k = P × (1+i)^k - M × ((1+i)^k - 1) / i
//
// Closed-form geometric series, not an iterative walk: summing thousands of
// monthly rows accumulates floating-point drift over a 30-year term.
func RemainingBalance(principal, annualRatePct float64, termYears int, yearsElapsed float64) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	if yearsElapsed <= 0 {
		return principal
	}
	if yearsElapsed >= float64(termYears) {
		return 0
	}

	k := yearsElapsed * 12
	if annualRatePct <= 0 {
		// Straight-line paydown
		n := float64(termYears * 12)
		return principal * (1 - k/n)
	}

	i := annualRatePct / 100 / 12
	m := MonthlyPayment(principal, annualRatePct, termYears)
	growth := math.Pow(1+i, k)
	balance := principal*growth - m*(growth-1)/i
	if balance < 0 || math.IsNaN(balance) {
		return 0
	}
	return balance
}

// AnnualDebtService returns twelve months of P&I.
func AnnualDebtService(principal, annualRatePct float64, termYears int) float64 {
	return MonthlyPayment(principal, annualRatePct, termYears) * 12
}

// PrincipalPaidThroughMonth simulates the first n months of the schedule and
// returns cumulative principal reduction. Used for year-1 equity growth where
// the month-by-month interest split matters.
func PrincipalPaidThroughMonth(principal, annualRatePct float64, termYears, months int) float64 {
	if principal <= 0 || termYears <= 0 || months <= 0 {
		return 0
	}
	payment := MonthlyPayment(principal, annualRatePct, termYears)
	i := annualRatePct / 100 / 12
	balance := principal
	var paid float64
	for m := 0; m < months && balance > 0; m++ {
		interest := balance * i
		principalPortion := payment - interest
		if principalPortion > balance {
			principalPortion = balance
		}
		paid += principalPortion
		balance -= principalPortion
	}
	return paid
}

// =============================================================================
// FULL SCHEDULE
// =============================================================================

// Row is one month of an amortization schedule.
type Row struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	Balance             float64 `json:"balance"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
}

// Schedule produces one Row per month for the full term. Callers needing
// annual summaries aggregate by truncating month/12.
func Schedule(principal, annualRatePct float64, termYears int) []Row {
	if principal <= 0 || termYears <= 0 {
		return nil
	}

	n := termYears * 12
	payment := MonthlyPayment(principal, annualRatePct, termYears)
	i := annualRatePct / 100 / 12

	rows := make([]Row, 0, n)
	balance := principal
	var cumPrincipal, cumInterest float64

	for m := 1; m <= n; m++ {
		interest := balance * i
		principalPortion := payment - interest
		if m == n || principalPortion > balance {
			// Final payment clears rounding residue
			principalPortion = balance
		}
		balance -= principalPortion
		cumPrincipal += principalPortion
		cumInterest += interest

		rows = append(rows, Row{
			Month:               m,
			Payment:             principalPortion + interest,
			Principal:           principalPortion,
			Interest:            interest,
			Balance:             balance,
			CumulativePrincipal: cumPrincipal,
			CumulativeInterest:  cumInterest,
		})
	}
	return rows
}

// InterestPaidInYear sums the interest portion of the 12 payments in the given
// 1-based year of the schedule, via the closed-form balance at the year
// boundaries rather than a full schedule walk.
//
// Interest_year = 12×M - (B_{start} - B_{end})
func InterestPaidInYear(principal, annualRatePct float64, termYears, year int) float64 {
	if year < 1 || year > termYears {
		return 0
	}
	startBalance := RemainingBalance(principal, annualRatePct, termYears, float64(year-1))
	endBalance := RemainingBalance(principal, annualRatePct, termYears, float64(year))
	principalPaid := startBalance - endBalance
	return AnnualDebtService(principal, annualRatePct, termYears) - principalPaid
}
