// Package remote translates the hosted backend's payload convention into
// engine types. The backend speaks camelCase field names with rates as
// decimal fractions (0.06 means 6%); the engine speaks snake_case with
// whole-number percentages. The conversion happens exactly once, here, and
// nowhere else. No financial logic is added on either side of it.
package remote

import (
	"fmt"

	"investment_analytics/pkg/core/dealscore"
	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/strategy"
	"investment_analytics/pkg/core/utils"
)

// PropertyPayload mirrors the backend's request shape. Rates are decimal
// fractions.
type PropertyPayload struct {
	PurchasePrice      float64 `json:"purchasePrice"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	ClosingCostPercent float64 `json:"closingCostPercent"`
	InterestRate       float64 `json:"interestRate"`
	LoanTermYears      int     `json:"loanTermYears"`
	MonthlyRent        float64 `json:"monthlyRent"`
	OtherMonthlyIncome float64 `json:"otherMonthlyIncome"`
	VacancyRate        float64 `json:"vacancyRate"`
	MaintenanceRate    float64 `json:"maintenanceRate"`
	ManagementRate     float64 `json:"managementRate"`
	AnnualPropertyTax  float64 `json:"annualPropertyTax"`
	AnnualInsurance    float64 `json:"annualInsurance"`
	MonthlyHOA         float64 `json:"monthlyHoa"`
	AppreciationRate   float64 `json:"appreciationRate"`
	RentGrowthRate     float64 `json:"rentGrowthRate"`
	ExpenseGrowthRate  float64 `json:"expenseGrowthRate"`
}

// ToEngine converts the payload to engine inputs, scaling every rate from
// decimal fraction to whole percent.
func (p PropertyPayload) ToEngine() metrics.AnalyticsInputs {
	return metrics.AnalyticsInputs{
		PurchasePrice:      p.PurchasePrice,
		DownPaymentPercent: p.DownPaymentPercent * 100,
		ClosingCostPercent: p.ClosingCostPercent * 100,
		InterestRate:       p.InterestRate * 100,
		LoanTermYears:      p.LoanTermYears,
		MonthlyRent:        p.MonthlyRent,
		OtherMonthlyIncome: p.OtherMonthlyIncome,
		VacancyRate:        p.VacancyRate * 100,
		MaintenanceRate:    p.MaintenanceRate * 100,
		ManagementRate:     p.ManagementRate * 100,
		AnnualPropertyTax:  p.AnnualPropertyTax,
		AnnualInsurance:    p.AnnualInsurance,
		MonthlyHOA:         p.MonthlyHOA,
		AppreciationRate:   p.AppreciationRate * 100,
		RentGrowthRate:     p.RentGrowthRate * 100,
		ExpenseGrowthRate:  p.ExpenseGrowthRate * 100,
	}
}

// FromEngine converts engine inputs back to the backend convention.
func FromEngine(in metrics.AnalyticsInputs) PropertyPayload {
	return PropertyPayload{
		PurchasePrice:      in.PurchasePrice,
		DownPaymentPercent: in.DownPaymentPercent / 100,
		ClosingCostPercent: in.ClosingCostPercent / 100,
		InterestRate:       in.InterestRate / 100,
		LoanTermYears:      in.LoanTermYears,
		MonthlyRent:        in.MonthlyRent,
		OtherMonthlyIncome: in.OtherMonthlyIncome,
		VacancyRate:        in.VacancyRate / 100,
		MaintenanceRate:    in.MaintenanceRate / 100,
		ManagementRate:     in.ManagementRate / 100,
		AnnualPropertyTax:  in.AnnualPropertyTax,
		AnnualInsurance:    in.AnnualInsurance,
		MonthlyHOA:         in.MonthlyHOA,
		AppreciationRate:   in.AppreciationRate / 100,
		RentGrowthRate:     in.RentGrowthRate / 100,
		ExpenseGrowthRate:  in.ExpenseGrowthRate / 100,
	}
}

// ParsePayload decodes a raw backend payload leniently (strict JSON, repaired
// JSON, then hjson) and converts it to engine inputs.
func ParsePayload(raw string) (metrics.AnalyticsInputs, error) {
	var p PropertyPayload
	if _, err := utils.SmartParse(raw, &p); err != nil {
		return metrics.AnalyticsInputs{}, fmt.Errorf("remote payload rejected: %w", err)
	}
	return p.ToEngine(), nil
}

// DealScoreVerdict mirrors the backend's deal-score response shape.
type DealScoreVerdict struct {
	Score           float64 `json:"score"`
	Grade           string  `json:"grade"`
	Verdict         string  `json:"verdict"`
	BreakevenPrice  float64 `json:"breakevenPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

// DealScoreFor evaluates a raw backend payload and frames the result in the
// backend's convention.
func DealScoreFor(raw string) (DealScoreVerdict, error) {
	in, err := ParsePayload(raw)
	if err != nil {
		return DealScoreVerdict{}, err
	}

	s := dealscore.Evaluate(in)
	return DealScoreVerdict{
		Score:           s.Score,
		Grade:           s.Grade,
		Verdict:         s.Verdict,
		BreakevenPrice:  s.BreakevenPrice,
		DiscountPercent: s.DiscountPercent,
	}, nil
}

// StrategyVerdict mirrors the backend's multi-strategy response shape.
type StrategyVerdict struct {
	BestStrategy string  `json:"bestStrategy"`
	BestScore    float64 `json:"bestScore"`
	Rankings     []Rank  `json:"rankings"`
}

// Rank is one strategy's position in the verdict.
type Rank struct {
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
	Grade    string  `json:"grade"`
	Viable   bool    `json:"viable"`
	Rank     int     `json:"rank"`
}

// StrategiesFor ranks a raw backend payload and frames the result in the
// backend's convention.
func StrategiesFor(raw string) (StrategyVerdict, error) {
	in, err := ParsePayload(raw)
	if err != nil {
		return StrategyVerdict{}, err
	}

	r := strategy.AnalyzeAll(in)
	v := StrategyVerdict{
		BestStrategy: string(r.BestStrategy),
		BestScore:    r.BestScore,
		Rankings:     make([]Rank, 0, len(r.Analyses)),
	}
	for _, a := range r.Analyses {
		v.Rankings = append(v.Rankings, Rank{
			Strategy: string(a.Strategy),
			Score:    a.Score,
			Grade:    a.Grade,
			Viable:   a.IsViable,
			Rank:     a.Rank,
		})
	}
	return v, nil
}
