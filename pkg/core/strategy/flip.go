package strategy

import (
	"fmt"

	"investment_analytics/pkg/core/metrics"
)

// Flip viability gates.
const (
	flipMinProfit   = 15000.0
	seventyPctRatio = 0.70
)

// FixAndFlipInputs models a purchase-rehab-resell project.
type FixAndFlipInputs struct {
	Base metrics.AnalyticsInputs `json:"base"` // PurchasePrice = acquisition price

	RehabBudget        float64 `json:"rehab_budget"`
	ARV                float64 `json:"arv"`
	HoldingMonths      int     `json:"holding_months"`
	MonthlyHoldingCost float64 `json:"monthly_holding_cost"`
	FinancingCost      float64 `json:"financing_cost"`       // points + interest over the hold
	SellingCostPercent float64 `json:"selling_cost_percent"` // % of ARV (commission + closing)
}

// FixAndFlipMetrics is the flip-specific metric shape.
type FixAndFlipMetrics struct {
	TotalCost         float64 `json:"total_cost"` // purchase + rehab + holding + financing + selling
	HoldingCosts      float64 `json:"holding_costs"`
	SellingCosts      float64 `json:"selling_costs"`
	NetProfit         float64 `json:"net_profit"`
	ProfitMargin      float64 `json:"profit_margin"`       // profit / ARV × 100
	ROI               float64 `json:"roi"`                 // profit / cash deployed × 100
	MaxAllowableOffer float64 `json:"max_allowable_offer"` // 0.70×ARV − rehab
	MeetsSeventyRule  bool    `json:"meets_seventy_rule"`
	AnnualizedROI     float64 `json:"annualized_roi"`
	CashDeployed      float64 `json:"cash_deployed"`
}

// CalculateFixAndFlipMetrics builds the full cost stack against the ARV and
// checks the 70% rule: purchase ≤ 0.70×ARV − rehab budget.
func CalculateFixAndFlipMetrics(in FixAndFlipInputs) FixAndFlipMetrics {
	var m FixAndFlipMetrics
	base := in.Base

	m.HoldingCosts = in.MonthlyHoldingCost * float64(in.HoldingMonths)
	m.SellingCosts = in.ARV * in.SellingCostPercent / 100
	m.TotalCost = base.PurchasePrice + in.RehabBudget + m.HoldingCosts +
		in.FinancingCost + m.SellingCosts

	m.NetProfit = in.ARV - m.TotalCost
	if in.ARV > 0 {
		m.ProfitMargin = m.NetProfit / in.ARV * 100
	}

	// Cash actually deployed: down payment + closing + rehab + holding +
	// financing (selling costs come out of sale proceeds).
	m.CashDeployed = base.PurchasePrice*(base.DownPaymentPercent+base.ClosingCostPercent)/100 +
		in.RehabBudget + m.HoldingCosts + in.FinancingCost
	if m.CashDeployed > 0 {
		m.ROI = m.NetProfit / m.CashDeployed * 100
	}
	if in.HoldingMonths > 0 {
		m.AnnualizedROI = m.ROI * 12 / float64(in.HoldingMonths)
	}

	m.MaxAllowableOffer = seventyPctRatio*in.ARV - in.RehabBudget
	m.MeetsSeventyRule = base.PurchasePrice <= m.MaxAllowableOffer

	return m
}

// GenerateFixAndFlipInsights produces up to four typed observations.
func GenerateFixAndFlipInsights(in FixAndFlipInputs, m FixAndFlipMetrics) []Insight {
	var insights []Insight

	if m.MeetsSeventyRule {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Purchase price clears the 70%% rule (MAO $%.0f)", m.MaxAllowableOffer)})
	} else {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Purchase exceeds the max allowable offer of $%.0f", m.MaxAllowableOffer)})
	}

	if m.NetProfit >= flipMinProfit*2 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Projected profit of $%.0f leaves room for surprises", m.NetProfit)})
	} else if m.NetProfit < flipMinProfit {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Profit of $%.0f is under the $%.0f floor for flip risk", m.NetProfit, flipMinProfit)})
	}

	if m.ProfitMargin > 0 && m.ProfitMargin < 10 {
		insights = append(insights, Insight{InsightTip,
			fmt.Sprintf("Margin is %.1f%% of ARV; a 5%% resale miss erases most of it", m.ProfitMargin)})
	}

	if in.HoldingMonths > 9 {
		insights = append(insights, Insight{InsightTip,
			fmt.Sprintf("%d-month hold; every extra month costs $%.0f", in.HoldingMonths, in.MonthlyHoldingCost)})
	}

	return capInsights(insights)
}

// CalculateFixAndFlipScore applies the weighted rubric:
// profit 40, margin 25, 70% rule 20, annualized ROI 15.
func CalculateFixAndFlipScore(m FixAndFlipMetrics) float64 {
	score := ratioScore(m.NetProfit, 40000, 40) +
		ratioScore(m.ProfitMargin, 15, 25) +
		ratioScore(m.AnnualizedROI, 40, 15)
	if m.MeetsSeventyRule {
		score += 20
	}
	return clampScore(score)
}

// AnalyzeFixAndFlip runs the full pipeline. Viability is a hard double gate:
// profit of at least $15,000 AND the 70% rule satisfied. Positive profit
// alone never flips the gate.
func AnalyzeFixAndFlip(in FixAndFlipInputs) Analysis {
	m := CalculateFixAndFlipMetrics(in)
	score := CalculateFixAndFlipScore(m)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: FixAndFlip,
		Name:     FixAndFlip.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateFixAndFlipInsights(in, m),
		IsViable: m.NetProfit >= flipMinProfit && m.MeetsSeventyRule,
	}
}
