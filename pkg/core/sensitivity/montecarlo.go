package sensitivity

import (
	"math/rand"
	"sort"

	"investment_analytics/pkg/core/metrics"
)

// Uniform draw spreads, in percent of the baseline value.
const (
	mcRentSpread        = 10.0
	mcVacancySpread     = 20.0
	mcMaintenanceSpread = 20.0
)

// MonteCarloResult summarizes the simulated monthly cash-flow distribution.
type MonteCarloResult struct {
	Draws           int     `json:"draws"`
	MedianCashFlow  float64 `json:"median_cash_flow"`
	P10CashFlow     float64 `json:"p10_cash_flow"`
	P90CashFlow     float64 `json:"p90_cash_flow"`
	ProbPositive    float64 `json:"prob_positive"`     // 0-100
	ProbAboveTarget float64 `json:"prob_above_target"` // 0-100
	TargetCashFlow  float64 `json:"target_cash_flow"`
}

// MonteCarlo runs draws random recomputations, each perturbing rent (±10%),
// vacancy (±20%), and maintenance (±20%) with independent uniform draws. The
// seed makes runs reproducible; two calls with the same seed and inputs
// return identical results.
func MonteCarlo(in metrics.AnalyticsInputs, draws int, targetCashFlow float64, seed int64) MonteCarloResult {
	r := MonteCarloResult{Draws: draws, TargetCashFlow: targetCashFlow}
	if draws <= 0 {
		return r
	}

	rng := rand.New(rand.NewSource(seed))
	uniform := func(spread float64) float64 {
		return 1 + spread/100*(2*rng.Float64()-1)
	}

	flows := make([]float64, draws)
	var positive, aboveTarget int
	for i := 0; i < draws; i++ {
		draw := in
		draw.MonthlyRent *= uniform(mcRentSpread)
		draw.VacancyRate *= uniform(mcVacancySpread)
		draw.MaintenanceRate *= uniform(mcMaintenanceSpread)

		cf := metrics.Calculate(draw).MonthlyCashFlow
		flows[i] = cf
		if cf > 0 {
			positive++
		}
		if cf > targetCashFlow {
			aboveTarget++
		}
	}

	sort.Float64s(flows)
	r.MedianCashFlow = percentile(flows, 50)
	r.P10CashFlow = percentile(flows, 10)
	r.P90CashFlow = percentile(flows, 90)
	r.ProbPositive = float64(positive) / float64(draws) * 100
	r.ProbAboveTarget = float64(aboveTarget) / float64(draws) * 100
	return r
}

// percentile interpolates linearly over a sorted slice. p is 0-100.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	pos := p / 100 * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
