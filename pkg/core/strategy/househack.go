package strategy

import (
	"fmt"

	"investment_analytics/pkg/core/metrics"
)

// HouseHackInputs models an owner-occupied multi-unit: the owner lives in one
// unit and rents the rest, measuring housing cost instead of pure cash flow.
type HouseHackInputs struct {
	Base metrics.AnalyticsInputs `json:"base"` // MonthlyRent = total market rent, all units

	Units                 int     `json:"units"`
	OwnerUnits            int     `json:"owner_units"`
	RentalOccupancyPct    float64 `json:"rental_occupancy_pct"`   // of the rented units
	CurrentHousingPayment float64 `json:"current_housing_payment"` // what the owner pays today
}

// HouseHackMetrics is the house-hack-specific metric shape.
type HouseHackMetrics struct {
	RentedUnits          int     `json:"rented_units"`
	CollectedRent        float64 `json:"collected_rent"` // monthly, after occupancy
	MonthlyPI            float64 `json:"monthly_pi"`
	OperatingExpenses    float64 `json:"operating_expenses"`
	NetHousingCost       float64 `json:"net_housing_cost"` // what the owner pays to live there
	HousingCostReduction float64 `json:"housing_cost_reduction"`
	ReductionPercent     float64 `json:"reduction_percent"`
	LivesForFree         bool    `json:"lives_for_free"`
	FutureCashFlow       float64 `json:"future_cash_flow"` // if owner moves out, all units rented
}

// CalculateHouseHackMetrics nets rental income from the other units against
// the whole building's carrying cost and compares the remainder to the
// owner's stated current housing payment.
func CalculateHouseHackMetrics(in HouseHackInputs) HouseHackMetrics {
	var m HouseHackMetrics
	base := in.Base

	units := in.Units
	if units < 1 {
		units = 1
	}
	owner := in.OwnerUnits
	if owner < 1 {
		owner = 1
	}
	if owner > units {
		owner = units
	}
	m.RentedUnits = units - owner

	rentPerUnit := base.MonthlyRent / float64(units)
	m.CollectedRent = rentPerUnit * float64(m.RentedUnits) * in.RentalOccupancyPct / 100

	core := metrics.Calculate(base)
	m.MonthlyPI = core.MonthlyPI

	// Operating expenses on the whole building, with maintenance and
	// management scaled to the rented units only.
	maintenance := m.CollectedRent * base.MaintenanceRate / 100
	management := m.CollectedRent * base.ManagementRate / 100
	fixed := base.AnnualPropertyTax/12 + base.AnnualInsurance/12 + base.MonthlyHOA
	m.OperatingExpenses = maintenance + management + fixed

	m.NetHousingCost = m.MonthlyPI + m.OperatingExpenses - m.CollectedRent
	m.LivesForFree = m.NetHousingCost <= 0

	m.HousingCostReduction = in.CurrentHousingPayment - m.NetHousingCost
	if in.CurrentHousingPayment > 0 {
		m.ReductionPercent = m.HousingCostReduction / in.CurrentHousingPayment * 100
	}

	// Exit path: full occupancy of every unit at market rent.
	m.FutureCashFlow = metrics.Calculate(base).MonthlyCashFlow

	return m
}

// GenerateHouseHackInsights produces up to four typed observations.
func GenerateHouseHackInsights(in HouseHackInputs, m HouseHackMetrics) []Insight {
	var insights []Insight

	if m.LivesForFree {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Tenants cover the building: owner lives free and nets $%.0f/month", -m.NetHousingCost)})
	} else if m.ReductionPercent >= 50 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Housing cost drops %.0f%% vs the current $%.0f payment",
				m.ReductionPercent, in.CurrentHousingPayment)})
	} else if m.HousingCostReduction <= 0 {
		insights = append(insights, Insight{InsightConcern,
			"Living here costs more than the current housing payment"})
	}

	if m.FutureCashFlow > 0 {
		insights = append(insights, Insight{InsightStrength,
			fmt.Sprintf("Converts to a $%.0f/month rental when the owner moves out", m.FutureCashFlow)})
	} else {
		insights = append(insights, Insight{InsightTip,
			"Negative cash flow at full occupancy; plan the move-out exit carefully"})
	}

	if in.RentalOccupancyPct < 75 {
		insights = append(insights, Insight{InsightTip,
			fmt.Sprintf("Model assumes only %.0f%% occupancy of the rented units", in.RentalOccupancyPct)})
	}

	return capInsights(insights)
}

// CalculateHouseHackScore applies the weighted rubric:
// cost reduction 45, lives-free bonus 20, future cash flow 35.
func CalculateHouseHackScore(m HouseHackMetrics) float64 {
	score := ratioScore(m.ReductionPercent, 100, 45) +
		ratioScore(m.FutureCashFlow, 300, 35)
	if m.LivesForFree {
		score += 20
	}
	return clampScore(score)
}

// AnalyzeHouseHack runs the full pipeline. Viable requires a real reduction
// in housing cost.
func AnalyzeHouseHack(in HouseHackInputs) Analysis {
	m := CalculateHouseHackMetrics(in)
	score := CalculateHouseHackScore(m)
	grade, color := scoreToGrade(score)

	return Analysis{
		Strategy: HouseHack,
		Name:     HouseHack.DisplayName(),
		Score:    score,
		Grade:    grade,
		Color:    color,
		Metrics:  m,
		Insights: GenerateHouseHackInsights(in, m),
		IsViable: m.HousingCostReduction > 0,
	}
}
