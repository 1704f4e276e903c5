package strategy

import (
	"fmt"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
)

// BRRRRInputs models Buy-Rehab-Rent-Refinance-Repeat: an acquisition below
// market, a rehab budget, then a cash-out refinance against the ARV.
type BRRRRInputs struct {
	Base metrics.AnalyticsInputs `json:"base"` // PurchasePrice = acquisition price

	RehabBudget        float64 `json:"rehab_budget"`
	ARV                float64 `json:"arv"`
	HoldingMonths      int     `json:"holding_months"` // purchase to refinance
	MonthlyHoldingCost float64 `json:"monthly_holding_cost"`
	RefinanceLTV       float64 `json:"refinance_ltv"` // % of ARV
	RefinanceRate      float64 `json:"refinance_rate"`
	RefinanceTermYears int     `json:"refinance_term_years"`
}

// BRRRRMetrics is the BRRRR-specific metric shape.
type BRRRRMetrics struct {
	TotalInvested    float64 `json:"total_invested"` // purchase cash + rehab + holding
	RefinanceLoan    float64 `json:"refinance_loan"`
	CashRecouped     float64 `json:"cash_recouped"`
	CashLeftInDeal   float64 `json:"cash_left_in_deal"`
	CashRecoupedPct  float64 `json:"cash_recouped_pct"`
	InfiniteReturn   bool    `json:"infinite_return"` // recouped > 100%: no basis left
	EquityAtRefi     float64 `json:"equity_at_refi"`  // ARV - refinance loan
	PostRefiPI       float64 `json:"post_refi_pi"`
	MonthlyCashFlow  float64 `json:"monthly_cash_flow"` // after refinance
	AnnualCashFlow   float64 `json:"annual_cash_flow"`
	CashOnCash       float64 `json:"cash_on_cash"` // on cash left in deal
	AllInToARVRatio  float64 `json:"all_in_to_arv_ratio"`
	MonthlyHoldTotal float64 `json:"monthly_hold_total"`
}

// CalculateBRRRRMetrics builds the purchase+rehab+holding cost stack, sizes
// the refinance at LTV × ARV, and measures how much of the invested cash the
// refinance returns.
func CalculateBRRRRMetrics(in BRRRRInputs) BRRRRMetrics {
	var m BRRRRMetrics
	base := in.Base

	purchaseCash := base.PurchasePrice * (base.DownPaymentPercent + base.ClosingCostPercent) / 100
	m.MonthlyHoldTotal = in.MonthlyHoldingCost * float64(in.HoldingMonths)
	m.TotalInvested = purchaseCash + in.RehabBudget + m.MonthlyHoldTotal

	m.RefinanceLoan = in.ARV * in.RefinanceLTV / 100

	// Cash-out: new loan pays off the acquisition loan, remainder returns to
	// the investor.
	acquisitionLoan := base.PurchasePrice * (1 - base.DownPaymentPercent/100)
	cashOut := m.RefinanceLoan - acquisitionLoan
	if cashOut < 0 {
		cashOut = 0
	}
	m.CashRecouped = cashOut
	m.CashLeftInDeal = m.TotalInvested - cashOut

	if m.TotalInvested > 0 {
		m.CashRecoupedPct = cashOut / m.TotalInvested * 100
	}
	// Recouping more than invested leaves zero or negative basis; cash-on-cash
	// is undefined and the return is flagged infinite instead.
	m.InfiniteReturn = m.CashRecoupedPct > 100

	m.EquityAtRefi = in.ARV - m.RefinanceLoan
	m.PostRefiPI = mortgage.MonthlyPayment(m.RefinanceLoan, in.RefinanceRate, in.RefinanceTermYears)

	// Post-refinance operation at the base expense profile but the new debt.
	gross := base.MonthlyRent + base.OtherMonthlyIncome
	vacancy := gross * base.VacancyRate / 100
	maintenance := base.MonthlyRent * base.MaintenanceRate / 100
	management := base.MonthlyRent * base.ManagementRate / 100
	fixed := base.AnnualPropertyTax/12 + base.AnnualInsurance/12 + base.MonthlyHOA
	m.MonthlyCashFlow = gross - vacancy - maintenance - management - fixed - m.PostRefiPI
	m.AnnualCashFlow = m.MonthlyCashFlow * 12

	if m.CashLeftInDeal > 0 {
		m.CashOnCash = m.AnnualCashFlow / m.CashLeftInDeal * 100
	}
	if in.ARV > 0 {
		m.AllInToARVRatio = (base.PurchasePrice + in.RehabBudget + m.MonthlyHoldTotal) / in.ARV
	}

	return m
}

// GenerateBRRRRInsights produces up to four typed observations.
func GenerateBRRRRInsights(in BRRRRInputs, m BRRRRMetrics) []Insight {
	var insights []Insight

	if m.InfiniteReturn {
		insights = append(insights, Insight{InsightStrength,
			"Refinance returns more than invested: infinite return on remaining basis"})
	} else if m.CashRecoupedPct >= 75 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Refinance recovers %.0f%% of invested cash", m.CashRecoupedPct)})
	} else if m.CashRecoupedPct < 50 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Only %.0f%% of cash comes back at refinance; capital stays parked", m.CashRecoupedPct)})
	}

	if m.MonthlyCashFlow < 0 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Property loses $%.0f/month after the cash-out refinance", -m.MonthlyCashFlow)})
	}

	if m.AllInToARVRatio > 0.80 {
		insights = append(insights, Insight{InsightTip,
			fmt.Sprintf("All-in cost is %.0f%% of ARV; thin margin if the appraisal misses", m.AllInToARVRatio*100)})
	}

	if m.EquityAtRefi > 0 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("$%.0f of equity remains after the refinance", m.EquityAtRefi)})
	}

	return capInsights(insights)
}

// CalculateBRRRRScore applies the weighted rubric:
// cash recouped 40, post-refi cash flow 30, all-in margin 30.
func CalculateBRRRRScore(m BRRRRMetrics) float64 {
	score := ratioScore(m.CashRecoupedPct, 100, 40) +
		ratioScore(m.MonthlyCashFlow, 250, 30) +
		ratioScore(1-m.AllInToARVRatio, 0.25, 30)
	return clampScore(score)
}

// AnalyzeBRRRR runs the full pipeline. Viable requires positive post-refi
// cash flow and at least half the cash recovered.
func AnalyzeBRRRR(in BRRRRInputs) Analysis {
	m := CalculateBRRRRMetrics(in)
	score := CalculateBRRRRScore(m)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: BRRRR,
		Name:     BRRRR.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateBRRRRInsights(in, m),
		IsViable: m.MonthlyCashFlow > 0 && m.CashRecoupedPct >= 50,
	}
}
