// Package report renders one property's full analysis as a markdown
// document: headline metrics, deal score, strategy ranking, the multi-year
// projection, and whole-hold returns. The output is validated with goldmark
// before it leaves, so consumers can render it without re-checking.
package report

import (
	"fmt"
	"strings"

	"investment_analytics/pkg/core/dealscore"
	"investment_analytics/pkg/core/exitreturn"
	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/projection"
	"investment_analytics/pkg/core/strategy"
	"investment_analytics/pkg/core/utils"
)

// Options controls the report's projection horizon and exit assumptions.
type Options struct {
	Title        string                        `json:"title" yaml:"title"`
	HoldYears    int                           `json:"hold_years" yaml:"hold_years"`
	Depreciation projection.DepreciationConfig `json:"depreciation" yaml:"depreciation"`
	Sale         exitreturn.SaleAssumptions    `json:"sale" yaml:"sale"`
	FinanceRate  float64                       `json:"finance_rate" yaml:"finance_rate"`   // whole %, for MIRR
	ReinvestRate float64                       `json:"reinvest_rate" yaml:"reinvest_rate"` // whole %, for MIRR
}

// DefaultOptions is a 10-year hold with typical disposition costs.
func DefaultOptions() Options {
	return Options{
		Title:     "Investment Analysis",
		HoldYears: 10,
		Depreciation: projection.DepreciationConfig{
			LandValuePercent: 20,
			MarginalTaxRate:  24,
		},
		Sale: exitreturn.SaleAssumptions{
			HoldYears:           10,
			BrokerCommissionPct: 5,
			ClosingCostPct:      1,
			CapitalGainsRate:    15,
		},
		FinanceRate:  6,
		ReinvestRate: 5,
	}
}

// Build assembles the markdown report for one input snapshot. The returned
// string always validates under goldmark; the error covers only the
// validation failure path.
func Build(in metrics.AnalyticsInputs, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = "Investment Analysis"
	}
	if opts.HoldYears <= 0 {
		opts.HoldYears = 10
	}
	opts.Sale.HoldYears = opts.HoldYears

	m := metrics.Calculate(in)
	score := dealscore.Evaluate(in)
	ranked := strategy.AnalyzeAll(in)
	years := projection.ProjectYears(in, opts.HoldYears)
	returns := exitreturn.AnalyzeReturns(in, opts.Depreciation, opts.Sale,
		opts.FinanceRate, opts.ReinvestRate)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", opts.Title))
	sb.WriteString(fmt.Sprintf("Purchase price $%.0f, %.0f%% down, %.2f%% for %d years.\n\n",
		in.PurchasePrice, in.DownPaymentPercent, in.InterestRate, in.LoanTermYears))

	writeMetrics(&sb, m)
	writeDealScore(&sb, score)
	writeStrategies(&sb, ranked)
	writeProjection(&sb, years)
	writeReturns(&sb, returns)

	md := sb.String()
	if !utils.ValidateMarkdown(md) {
		return "", fmt.Errorf("generated report failed markdown validation")
	}
	return md, nil
}

// BuildHTML renders the report as HTML for web consumers.
func BuildHTML(in metrics.AnalyticsInputs, opts Options) (string, error) {
	md, err := Build(in, opts)
	if err != nil {
		return "", err
	}
	return utils.RenderHTML(md)
}

func writeMetrics(sb *strings.Builder, m metrics.CalculatedMetrics) {
	sb.WriteString("## Key Metrics\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Monthly Cash Flow | $%.2f |\n", m.MonthlyCashFlow))
	sb.WriteString(fmt.Sprintf("| NOI (annual) | $%.2f |\n", m.NOI))
	sb.WriteString(fmt.Sprintf("| Cap Rate | %.2f%% |\n", m.CapRate))
	sb.WriteString(fmt.Sprintf("| Cash-on-Cash | %.2f%% |\n", m.CashOnCash))
	sb.WriteString(fmt.Sprintf("| DSCR | %.2f |\n", m.DSCR))
	sb.WriteString(fmt.Sprintf("| Total Cash Required | $%.2f |\n", m.TotalCashRequired))
	sb.WriteString(fmt.Sprintf("| Break-even Rent | $%.2f |\n", m.BreakEvenRent))
	sb.WriteString("\n")
}

func writeDealScore(sb *strings.Builder, s dealscore.DealScore) {
	sb.WriteString("## Deal Score\n\n")
	sb.WriteString(fmt.Sprintf("**%.0f / 100 (%s)** — %s\n\n", s.Score, s.Grade, s.Verdict))
	sb.WriteString(fmt.Sprintf("Breakeven price $%.0f (%.1f%% below list).\n\n",
		s.BreakevenPrice, s.DiscountPercent))
	for _, f := range s.Breakdown {
		sb.WriteString(fmt.Sprintf("- %s: %.0f\n", f.Name, f.Score))
	}
	sb.WriteString("\n")
}

func writeStrategies(sb *strings.Builder, r strategy.MultiStrategyResult) {
	sb.WriteString("## Strategy Ranking\n\n")
	sb.WriteString(fmt.Sprintf("Best fit: **%s** (%.0f).\n\n",
		r.BestStrategy.DisplayName(), r.BestScore))
	sb.WriteString("| Rank | Strategy | Score | Grade | Viable |\n|---|---|---|---|---|\n")
	for _, a := range r.Analyses {
		viable := "no"
		if a.IsViable {
			viable = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %.0f | %s | %s |\n",
			a.Rank, a.Name, a.Score, a.Grade, viable))
	}
	sb.WriteString("\n")
}

func writeProjection(sb *strings.Builder, years []projection.YearProjection) {
	sb.WriteString("## Projection\n\n")
	sb.WriteString("| Year | Value | Annual CF | Equity | Total Wealth |\n|---|---|---|---|---|\n")
	for _, y := range years {
		sb.WriteString(fmt.Sprintf("| %d | $%.0f | $%.0f | $%.0f | $%.0f |\n",
			y.Year, y.PropertyValue, y.AnnualCashFlow, y.Equity, y.TotalWealth))
	}
	sb.WriteString("\n")
}

func writeReturns(sb *strings.Builder, r exitreturn.InvestmentReturns) {
	sb.WriteString("## Hold-Period Returns\n\n")
	sb.WriteString(fmt.Sprintf("- IRR: %.2f%%\n", r.IRR))
	sb.WriteString(fmt.Sprintf("- MIRR: %.2f%%\n", r.MIRR))
	sb.WriteString(fmt.Sprintf("- Equity multiple: %.2fx\n", r.EquityMultiple))
	sb.WriteString(fmt.Sprintf("- Total profit: $%.0f\n", r.TotalProfit))
	if r.PaybackYears >= 0 {
		sb.WriteString(fmt.Sprintf("- Payback: %.1f years\n", r.PaybackYears))
	} else {
		sb.WriteString("- Payback: not recovered within the hold\n")
	}
	sb.WriteString("\n")
}
