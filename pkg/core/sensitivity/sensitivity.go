// Package sensitivity stress-tests a property by perturbing one input at a
// time or by random draws over several at once. Everything here is a pure
// function of the input snapshot; callers own the snapshot and the results.
package sensitivity

import (
	"investment_analytics/pkg/core/dealscore"
	"investment_analytics/pkg/core/metrics"
)

// Variable identifies one perturbable input.
type Variable string

const (
	VarMonthlyRent     Variable = "monthly_rent"
	VarVacancyRate     Variable = "vacancy_rate"
	VarMaintenanceRate Variable = "maintenance_rate"
	VarInterestRate    Variable = "interest_rate"
	VarPurchasePrice   Variable = "purchase_price"
)

// Variables returns the perturbable inputs in display order.
func Variables() []Variable {
	return []Variable{
		VarMonthlyRent,
		VarVacancyRate,
		VarMaintenanceRate,
		VarInterestRate,
		VarPurchasePrice,
	}
}

// DisplayName returns a human-readable label for the variable.
func (v Variable) DisplayName() string {
	switch v {
	case VarMonthlyRent:
		return "Monthly Rent"
	case VarVacancyRate:
		return "Vacancy Rate"
	case VarMaintenanceRate:
		return "Maintenance Rate"
	case VarInterestRate:
		return "Interest Rate"
	case VarPurchasePrice:
		return "Purchase Price"
	}
	return string(v)
}

// Impact classification thresholds: the worst-case monthly cash-flow swing
// across the sweep, in dollars.
const (
	impactHighCF   = 150.0
	impactMediumCF = 50.0
)

// DefaultDeltas is the standard sweep: ±10% and ±20% around baseline.
var DefaultDeltas = []float64{-20, -10, 10, 20}

// Point is one recomputation of the engine at a perturbed input value.
type Point struct {
	DeltaPercent    float64 `json:"delta_percent"`
	Value           float64 `json:"value"` // the perturbed variable's value
	MonthlyCashFlow float64 `json:"monthly_cash_flow"`
	CashOnCash      float64 `json:"cash_on_cash"`
	Score           float64 `json:"score"`
}

// SweepResult is the single-variable sensitivity picture.
type SweepResult struct {
	Variable  Variable `json:"variable"`
	Baseline  Point    `json:"baseline"`
	Points    []Point  `json:"points"`
	Impact    string   `json:"impact"`    // high | medium | low
	Direction string   `json:"direction"` // positive | negative | neutral
}

// perturb scales one input by deltaPct percent. The snapshot is passed by
// value, so the caller's inputs are never touched.
func perturb(in metrics.AnalyticsInputs, v Variable, deltaPct float64) metrics.AnalyticsInputs {
	factor := 1 + deltaPct/100
	switch v {
	case VarMonthlyRent:
		in.MonthlyRent *= factor
	case VarVacancyRate:
		in.VacancyRate *= factor
	case VarMaintenanceRate:
		in.MaintenanceRate *= factor
	case VarInterestRate:
		in.InterestRate *= factor
	case VarPurchasePrice:
		in.PurchasePrice *= factor
	}
	return in
}

func variableValue(in metrics.AnalyticsInputs, v Variable) float64 {
	switch v {
	case VarMonthlyRent:
		return in.MonthlyRent
	case VarVacancyRate:
		return in.VacancyRate
	case VarMaintenanceRate:
		return in.MaintenanceRate
	case VarInterestRate:
		return in.InterestRate
	case VarPurchasePrice:
		return in.PurchasePrice
	}
	return 0
}

func pointAt(in metrics.AnalyticsInputs, v Variable, deltaPct float64) Point {
	probe := perturb(in, v, deltaPct)
	m := metrics.Calculate(probe)
	return Point{
		DeltaPercent:    deltaPct,
		Value:           variableValue(probe, v),
		MonthlyCashFlow: m.MonthlyCashFlow,
		CashOnCash:      m.CashOnCash,
		Score:           dealscore.Evaluate(probe).Score,
	}
}

// Sweep perturbs one variable across the given percent deltas (DefaultDeltas
// if nil), recomputing cash flow, cash-on-cash, and deal score at each point.
// Impact grades the worst observed cash-flow swing; direction compares the
// largest positive delta's cash flow against baseline.
func Sweep(in metrics.AnalyticsInputs, v Variable, deltas []float64) SweepResult {
	if len(deltas) == 0 {
		deltas = DefaultDeltas
	}

	r := SweepResult{
		Variable: v,
		Baseline: pointAt(in, v, 0),
		Points:   make([]Point, 0, len(deltas)),
	}

	maxSwing := 0.0
	var topDelta float64
	var topPoint Point
	for _, d := range deltas {
		p := pointAt(in, v, d)
		r.Points = append(r.Points, p)

		swing := p.MonthlyCashFlow - r.Baseline.MonthlyCashFlow
		if swing < 0 {
			swing = -swing
		}
		if swing > maxSwing {
			maxSwing = swing
		}
		if d > topDelta {
			topDelta = d
			topPoint = p
		}
	}

	switch {
	case maxSwing >= impactHighCF:
		r.Impact = "high"
	case maxSwing >= impactMediumCF:
		r.Impact = "medium"
	default:
		r.Impact = "low"
	}

	r.Direction = "neutral"
	if topDelta > 0 {
		diff := topPoint.MonthlyCashFlow - r.Baseline.MonthlyCashFlow
		if diff > 0.01 {
			r.Direction = "positive"
		} else if diff < -0.01 {
			r.Direction = "negative"
		}
	}
	return r
}

// SweepAll runs the default sweep over every perturbable variable.
func SweepAll(in metrics.AnalyticsInputs) []SweepResult {
	vars := Variables()
	out := make([]SweepResult, 0, len(vars))
	for _, v := range vars {
		out = append(out, Sweep(in, v, nil))
	}
	return out
}

// =============================================================================
// BREAK-EVEN SCAN
// =============================================================================

// BreakEven is the first perturbation of one variable that flips the sign of
// monthly cash flow.
type BreakEven struct {
	Variable     Variable `json:"variable"`
	Value        float64  `json:"value"`         // variable's value at the flip
	DeltaPercent float64  `json:"delta_percent"` // signed % change from baseline
	Found        bool     `json:"found"`
}

// FindBreakEven walks the variable in 1% steps away from baseline, in the
// direction that moves cash flow toward zero, and reports the first value at
// which the sign flips. The scan is linear on purpose: it is bounded (50%
// when starting cash-flow-positive, 100% otherwise) and its coarse step is
// the intended resolution for slider-style exploration, unlike the deal-score
// bisection which needs dollar precision.
func FindBreakEven(in metrics.AnalyticsInputs, v Variable) BreakEven {
	be := BreakEven{Variable: v}

	start := metrics.Calculate(in).MonthlyCashFlow
	if start == 0 {
		be.Value = variableValue(in, v)
		be.Found = true
		return be
	}

	limit := 100.0
	if start > 0 {
		limit = 50.0
	}

	// Probe a small positive step to learn which way this variable pushes
	// cash flow, then scan the direction that closes on zero.
	probe := metrics.Calculate(perturb(in, v, 1)).MonthlyCashFlow
	step := 1.0
	rising := probe > start
	if (start > 0) == rising {
		step = -1.0
	}

	for pct := step; pct >= -limit && pct <= limit; pct += step {
		cf := metrics.Calculate(perturb(in, v, pct)).MonthlyCashFlow
		if (start > 0 && cf < 0) || (start < 0 && cf >= 0) {
			be.Value = variableValue(perturb(in, v, pct), v)
			be.DeltaPercent = pct
			be.Found = true
			return be
		}
	}
	return be
}
