package strategy

import (
	"fmt"
)

// WholesaleInputs models getting a property under contract and assigning the
// contract to an end buyer for a fee. Standalone shape: wholesaling needs no
// financing assumptions.
type WholesaleInputs struct {
	ContractPrice    float64 `json:"contract_price"`
	AssignmentFee    float64 `json:"assignment_fee"`
	ARV              float64 `json:"arv"`
	EstimatedRepairs float64 `json:"estimated_repairs"`
	MarketingCost    float64 `json:"marketing_cost"`
	EarnestDeposit   float64 `json:"earnest_deposit"`
}

// WholesaleMetrics is the wholesale-specific metric shape.
type WholesaleMetrics struct {
	EndBuyerPrice     float64 `json:"end_buyer_price"` // contract + assignment fee
	MaxAllowableOffer float64 `json:"max_allowable_offer"` // 0.70×ARV − repairs
	BuyerSpread       float64 `json:"buyer_spread"` // MAO − end-buyer all-in
	EndBuyerMeets70   bool    `json:"end_buyer_meets_70"`
	NetFee            float64 `json:"net_fee"` // assignment fee − marketing
	ReturnOnDeposit   float64 `json:"return_on_deposit"` // net fee / earnest deposit × 100
	DiscountToARV     float64 `json:"discount_to_arv"` // contract price as % of ARV
}

// CalculateWholesaleMetrics checks the end buyer's position: the deal only
// assigns if the all-in price still clears the 70% rule for them.
func CalculateWholesaleMetrics(in WholesaleInputs) WholesaleMetrics {
	var m WholesaleMetrics

	m.EndBuyerPrice = in.ContractPrice + in.AssignmentFee
	m.MaxAllowableOffer = seventyPctRatio*in.ARV - in.EstimatedRepairs
	m.BuyerSpread = m.MaxAllowableOffer - m.EndBuyerPrice
	m.EndBuyerMeets70 = m.EndBuyerPrice <= m.MaxAllowableOffer

	m.NetFee = in.AssignmentFee - in.MarketingCost
	if in.EarnestDeposit > 0 {
		m.ReturnOnDeposit = m.NetFee / in.EarnestDeposit * 100
	}
	if in.ARV > 0 {
		m.DiscountToARV = in.ContractPrice / in.ARV * 100
	}

	return m
}

// GenerateWholesaleInsights produces up to four typed observations.
func GenerateWholesaleInsights(in WholesaleInputs, m WholesaleMetrics) []Insight {
	var insights []Insight

	if m.EndBuyerMeets70 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("End buyer pays $%.0f under their max allowable offer", m.BuyerSpread)})
	} else {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("End buyer's all-in price exceeds MAO by $%.0f; hard to assign", -m.BuyerSpread)})
	}

	if m.DiscountToARV > 0 && m.DiscountToARV <= 60 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Contract at %.0f%% of ARV leaves real margin for everyone", m.DiscountToARV)})
	}

	if m.NetFee < 5000 {
		insights = append(insights, Insight{InsightConcern,
			fmt.Sprintf("Net fee of $%.0f barely covers the effort and deposit risk", m.NetFee)})
	}

	if in.EstimatedRepairs > 0.25*in.ARV {
		insights = append(insights, Insight{InsightTip,
			"Repair estimate exceeds a quarter of ARV; end buyers will re-inspect hard"})
	}

	return capInsights(insights)
}

// CalculateWholesaleScore applies the weighted rubric:
// buyer spread 40, net fee 35, discount depth 25.
func CalculateWholesaleScore(m WholesaleMetrics) float64 {
	score := ratioScore(m.BuyerSpread, 20000, 40) +
		ratioScore(m.NetFee, 15000, 35) +
		ratioScore(100-m.DiscountToARV, 40, 25)
	return clampScore(score)
}

// AnalyzeWholesale runs the full pipeline. Viable requires an assignable
// spread for the end buyer and a positive net fee.
func AnalyzeWholesale(in WholesaleInputs) Analysis {
	m := CalculateWholesaleMetrics(in)
	score := CalculateWholesaleScore(m)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: Wholesale,
		Name:     Wholesale.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateWholesaleInsights(in, m),
		IsViable: m.EndBuyerMeets70 && m.NetFee > 0,
	}
}
