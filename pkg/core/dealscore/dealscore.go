// Package dealscore grades a listing by how far its price sits above the
// price at which the property's cash flow breaks even. The score is a stable,
// monotonic function of the inputs: raising the asking price never raises
// the score.
package dealscore

import (
	"investment_analytics/pkg/core/metrics"
)

// Bisection parameters for the breakeven-price search.
const (
	breakevenIterations = 30
	breakevenWindow     = 10.0 // |monthly cash flow| within $10 of zero
	searchFloorRatio    = 0.30 // search interval: [30%, 110%] of list price
	searchCeilRatio     = 1.10
)

// Scoring: every percent of discount-to-breakeven costs 100/45 points, so a
// property needing a 45% discount scores 0.
const discountPenalty = 100.0 / 45.0

// =============================================================================
// TYPES
// =============================================================================

// Factor is one scored sub-component of the deal grade.
type Factor struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Score float64 `json:"score"` // 0-100
}

// DealScore is one stateless evaluation of (inputs, list price). No caching:
// recomputation always yields the same value.
type DealScore struct {
	Score             float64  `json:"score"` // 0-100
	Grade             string   `json:"grade"` // A+ .. F
	Label             string   `json:"label"`
	Verdict           string   `json:"verdict"`
	Color             string   `json:"color"`
	BreakevenPrice    float64  `json:"breakeven_price"`
	DiscountPercent   float64  `json:"discount_percent"` // % below list needed to break even
	Breakdown         []Factor `json:"breakdown"`
	MonthlyCashFlowAt float64  `json:"monthly_cash_flow_at_breakeven"`
}

// =============================================================================
// BREAKEVEN SEARCH
// =============================================================================

// BreakevenPrice finds the purchase price at which monthly cash flow is within
// $10 of zero, via 30 bisection iterations over [30%, 110%] of the list price.
// Iteration-capped by construction: it always terminates with the best
// estimate even when the window is never hit inside the interval.
func BreakevenPrice(in metrics.AnalyticsInputs) float64 {
	list := in.PurchasePrice
	if list <= 0 {
		return 0
	}

	cashFlowAt := func(price float64) float64 {
		probe := in
		probe.PurchasePrice = price
		return metrics.Calculate(probe).MonthlyCashFlow
	}

	lo := list * searchFloorRatio
	hi := list * searchCeilRatio

	// Cash flow is decreasing in price. If even the floor loses money the
	// breakeven sits below the interval; the floor is the best estimate.
	if cashFlowAt(lo) < 0 {
		return lo
	}
	if cashFlowAt(hi) > 0 {
		return hi
	}

	mid := (lo + hi) / 2
	for iter := 0; iter < breakevenIterations; iter++ {
		mid = (lo + hi) / 2
		cf := cashFlowAt(mid)
		if cf > breakevenWindow {
			lo = mid
		} else if cf < -breakevenWindow {
			hi = mid
		} else {
			break
		}
	}
	return mid
}

// =============================================================================
// SCORING
// =============================================================================

// Evaluate produces the full deal score for one input snapshot.
func Evaluate(in metrics.AnalyticsInputs) DealScore {
	m := metrics.Calculate(in)
	breakeven := BreakevenPrice(in)

	discount := 0.0
	if in.PurchasePrice > 0 {
		discount = (in.PurchasePrice - breakeven) / in.PurchasePrice * 100
	}
	if discount < 0 {
		// Listed below breakeven: already cash flows at asking.
		discount = 0
	}

	score := 100 - discount*discountPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	grade, label, verdict, color := gradeForDiscount(discount)

	probe := in
	probe.PurchasePrice = breakeven

	return DealScore{
		Score:             score,
		Grade:             grade,
		Label:             label,
		Verdict:           verdict,
		Color:             color,
		BreakevenPrice:    breakeven,
		DiscountPercent:   discount,
		Breakdown:         breakdown(m),
		MonthlyCashFlowAt: metrics.Calculate(probe).MonthlyCashFlow,
	}
}

// gradeForDiscount maps discount-to-breakeven onto the fixed grade bands.
func gradeForDiscount(discount float64) (grade, label, verdict, color string) {
	switch {
	case discount <= 5:
		return "A+", "Excellent Deal", "Cash flows at or near asking price", "green"
	case discount <= 10:
		return "A", "Great Deal", "Small negotiation closes the gap", "green"
	case discount <= 15:
		return "B", "Good Deal", "Workable with a realistic discount", "lightgreen"
	case discount <= 25:
		return "C", "Fair Deal", "Needs a significant price reduction", "yellow"
	case discount <= 35:
		return "D", "Weak Deal", "Unlikely to negotiate this far below list", "orange"
	default:
		return "F", "Poor Deal", "Does not pencil at any realistic price", "red"
	}
}

// breakdown scores the individual factors the headline number summarizes.
// Each factor is clamped to [0, 100] independently.
func breakdown(m metrics.CalculatedMetrics) []Factor {
	return []Factor{
		{Name: "Cash Flow", Value: m.MonthlyCashFlow, Score: clamp(50 + m.MonthlyCashFlow/10)},
		{Name: "Cap Rate", Value: m.CapRate, Score: clamp(m.CapRate / 8 * 100)},
		{Name: "Cash on Cash", Value: m.CashOnCash, Score: clamp(50 + m.CashOnCash*5)},
		{Name: "DSCR", Value: m.DSCR, Score: clamp((m.DSCR - 0.5) / 1.0 * 100)},
		{Name: "1% Rule", Value: m.OnePercentRule, Score: clamp(m.OnePercentRule * 100)},
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
