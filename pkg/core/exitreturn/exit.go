package exitreturn

import (
	"math"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
	"investment_analytics/pkg/core/projection"
)

// DepreciationRecaptureRate is the statutory rate on the recaptured portion
// of the gain (IRC §1250 unrecaptured gain, 25%).
const DepreciationRecaptureRate = 25.0

// SaleAssumptions describes the disposition at the end of the hold.
type SaleAssumptions struct {
	HoldYears           int     `json:"hold_years" yaml:"hold_years"`
	BrokerCommissionPct float64 `json:"broker_commission_pct" yaml:"broker_commission_pct"`
	ClosingCostPct      float64 `json:"closing_cost_pct" yaml:"closing_cost_pct"`
	CapitalGainsRate    float64 `json:"capital_gains_rate" yaml:"capital_gains_rate"` // whole %
}

// ExitAnalysis is the terminal-value summary of a sale.
type ExitAnalysis struct {
	SalePrice               float64 `json:"sale_price"`
	SellingCosts            float64 `json:"selling_costs"`
	LoanPayoff              float64 `json:"loan_payoff"`
	NetProceeds             float64 `json:"net_proceeds"` // before taxes
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"`
	AdjustedBasis           float64 `json:"adjusted_basis"`
	TotalGain               float64 `json:"total_gain"`
	RecaptureTax            float64 `json:"recapture_tax"`
	CapitalGainsTax         float64 `json:"capital_gains_tax"`
	AfterTaxProceeds        float64 `json:"after_tax_proceeds"`
}

// InvestmentReturns summarizes the whole hold period.
type InvestmentReturns struct {
	InitialInvestment float64   `json:"initial_investment"`
	CashFlows         []float64 `json:"cash_flows"` // time 0 .. hold, exit included in final
	TotalProfit       float64   `json:"total_profit"`
	EquityMultiple    float64   `json:"equity_multiple"`
	IRR               float64   `json:"irr"`           // whole %
	MIRR              float64   `json:"mirr"`          // whole %
	PaybackYears      float64   `json:"payback_years"` // -1 if never recovered
}

// AnalyzeExit prices the sale: price compounds at the appreciation rate over
// the hold, commission and closing costs come off the top, the remaining
// loan balance pays off, and the taxable gain splits into recapture and
// capital gains.
//
// Recapture is capped at min(accumulated depreciation, max(0, gain)): a sale
// at a loss recaptures nothing.
func AnalyzeExit(in metrics.AnalyticsInputs, cfg projection.DepreciationConfig, sale SaleAssumptions) ExitAnalysis {
	var e ExitAnalysis

	hold := float64(sale.HoldYears)
	e.SalePrice = in.PurchasePrice * math.Pow(1+in.AppreciationRate/100, hold)
	e.SellingCosts = e.SalePrice * (sale.BrokerCommissionPct + sale.ClosingCostPct) / 100

	loan := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	e.LoanPayoff = mortgage.RemainingBalance(loan, in.InterestRate, in.LoanTermYears, hold)
	e.NetProceeds = e.SalePrice - e.SellingCosts - e.LoanPayoff

	e.AccumulatedDepreciation = projection.AccumulatedDepreciation(in, cfg, sale.HoldYears)

	// Original basis: price plus all closing costs; depreciation reduces it.
	originalBasis := in.PurchasePrice * (1 + in.ClosingCostPercent/100)
	e.AdjustedBasis = originalBasis - e.AccumulatedDepreciation
	e.TotalGain = (e.SalePrice - e.SellingCosts) - e.AdjustedBasis

	recapturable := math.Min(e.AccumulatedDepreciation, math.Max(0, e.TotalGain))
	e.RecaptureTax = recapturable * DepreciationRecaptureRate / 100

	remainingGain := e.TotalGain - recapturable
	if remainingGain > 0 {
		e.CapitalGainsTax = remainingGain * sale.CapitalGainsRate / 100
	}

	e.AfterTaxProceeds = e.NetProceeds - e.RecaptureTax - e.CapitalGainsTax
	return e
}

// AnalyzeReturns assembles the full cash-flow stream (initial investment out,
// annual projected cash flows in, after-tax exit proceeds folded into the
// final year) and computes the discounted return metrics over it.
func AnalyzeReturns(in metrics.AnalyticsInputs, cfg projection.DepreciationConfig, sale SaleAssumptions,
	financeRatePct, reinvestRatePct float64) InvestmentReturns {

	var r InvestmentReturns

	// Degenerate hold: nothing to project, nothing to discount. The zero
	// value is the sentinel; the engine never panics or errors on inputs.
	if sale.HoldYears <= 0 {
		return r
	}

	base := metrics.Calculate(in)
	r.InitialInvestment = base.TotalCashRequired

	rows := projection.ProjectYears(in, sale.HoldYears)
	exit := AnalyzeExit(in, cfg, sale)

	r.CashFlows = make([]float64, sale.HoldYears+1)
	r.CashFlows[0] = -r.InitialInvestment
	for i, row := range rows {
		r.CashFlows[i+1] = row.AnnualCashFlow
	}
	r.CashFlows[sale.HoldYears] += exit.AfterTaxProceeds

	var totalIn float64
	for _, cf := range r.CashFlows[1:] {
		totalIn += cf
	}
	r.TotalProfit = totalIn - r.InitialInvestment
	if r.InitialInvestment > 0 {
		r.EquityMultiple = totalIn / r.InitialInvestment
	}

	r.IRR = IRR(r.CashFlows) * 100
	r.MIRR = MIRR(r.CashFlows, financeRatePct/100, reinvestRatePct/100) * 100

	annual := make([]float64, len(rows))
	for i, row := range rows {
		annual[i] = row.AnnualCashFlow
	}
	r.PaybackYears = PaybackPeriod(r.InitialInvestment, annual, exit.AfterTaxProceeds)

	return r
}
