package strategy

import (
	"fmt"

	"investment_analytics/pkg/core/metrics"
)

// LongTermRentalMetrics reuses the core calculator output: the buy-and-hold
// rental is the baseline model every other strategy deviates from.
type LongTermRentalMetrics struct {
	metrics.CalculatedMetrics
}

// CalculateLongTermRentalMetrics wraps the core calculator.
func CalculateLongTermRentalMetrics(in metrics.AnalyticsInputs) LongTermRentalMetrics {
	return LongTermRentalMetrics{metrics.Calculate(in)}
}

// GenerateLongTermRentalInsights produces up to four typed observations.
func GenerateLongTermRentalInsights(in metrics.AnalyticsInputs, m LongTermRentalMetrics) []Insight {
	var insights []Insight

	if m.MonthlyCashFlow > 200 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Strong cash flow of $%.0f/month after all expenses", m.MonthlyCashFlow)})
	} else if m.MonthlyCashFlow < 0 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Negative cash flow of $%.0f/month at the asking price", m.MonthlyCashFlow)})
	}

	if m.DSCR >= 1.25 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("DSCR of %.2f clears the typical 1.25 lender threshold", m.DSCR)})
	} else if m.DSCR < 1.0 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("DSCR of %.2f means rent does not cover the mortgage", m.DSCR)})
	}

	if m.OnePercentRule >= 1.0 {
		insights = append(insights, Insight{InsightStrength,
			"Meets the 1% rule: monthly rent is at least 1% of purchase price"})
	} else if m.OnePercentRule < 0.7 {
		insights = append(insights, Insight{InsightTip,
			fmt.Sprintf("Rent-to-price ratio is %.2f%%; negotiate toward $%.0f to break even",
				m.OnePercentRule, metrics.BreakEvenRent(in))})
	}

	if m.CashOnCash > 8 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Cash-on-cash return of %.1f%% beats typical market returns", m.CashOnCash)})
	}

	return capInsights(insights)
}

// CalculateLongTermRentalScore applies the weighted rubric:
// cash flow 35, DSCR 25, cash-on-cash 25, 1% rule 15.
func CalculateLongTermRentalScore(m LongTermRentalMetrics) float64 {
	score := ratioScore(m.MonthlyCashFlow, 300, 35) +
		ratioScore(m.DSCR, 1.25, 25) +
		ratioScore(m.CashOnCash, 8, 25) +
		ratioScore(m.OnePercentRule, 1.0, 15)
	return clampScore(score)
}

// AnalyzeLongTermRental runs the full pipeline. Viable requires positive cash
// flow and a DSCR of at least 1.0.
func AnalyzeLongTermRental(in metrics.AnalyticsInputs) Analysis {
	m := CalculateLongTermRentalMetrics(in)
	score := CalculateLongTermRentalScore(m)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: LongTermRental,
		Name:     LongTermRental.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateLongTermRentalInsights(in, m),
		IsViable: m.MonthlyCashFlow > 0 && m.DSCR >= 1.0,
	}
}
