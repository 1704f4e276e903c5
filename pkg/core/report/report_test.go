package report

import (
	"strings"
	"testing"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/utils"
)

func reportInputs() metrics.AnalyticsInputs {
	return metrics.AnalyticsInputs{
		PurchasePrice:      400000,
		DownPaymentPercent: 20,
		ClosingCostPercent: 3,
		InterestRate:       6.0,
		LoanTermYears:      30,
		MonthlyRent:        3200,
		VacancyRate:        5,
		MaintenanceRate:    5,
		AnnualPropertyTax:  4800,
		AnnualInsurance:    1800,
		AppreciationRate:   3,
		RentGrowthRate:     3,
		ExpenseGrowthRate:  2,
	}
}

func TestBuildSections(t *testing.T) {
	md, err := Build(reportInputs(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, section := range []string{
		"## Key Metrics",
		"## Deal Score",
		"## Strategy Ranking",
		"## Projection",
		"## Hold-Period Returns",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("Report missing section %q", section)
		}
	}

	// All six strategies appear in the ranking table.
	for _, name := range []string{
		"Long-Term Rental", "Short-Term Rental", "BRRRR",
		"Fix & Flip", "House Hack", "Wholesale",
	} {
		if !strings.Contains(md, name) {
			t.Errorf("Ranking missing strategy %q", name)
		}
	}
}

func TestBuildValidatesUnderGoldmark(t *testing.T) {
	md, err := Build(reportInputs(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !utils.ValidateMarkdown(md) {
		t.Error("Report should validate as markdown")
	}
}

func TestBuildHTML(t *testing.T) {
	html, err := BuildHTML(reportInputs(), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "<table>") {
		t.Error("Expected rendered heading and table markup")
	}
}

func TestProjectionRowsFollowHoldYears(t *testing.T) {
	opts := DefaultOptions()
	opts.HoldYears = 5

	md, err := Build(reportInputs(), opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	idx := strings.Index(md, "## Projection")
	if idx < 0 {
		t.Fatal("Projection section missing")
	}
	section := md[idx:]
	if end := strings.Index(section, "## Hold-Period Returns"); end >= 0 {
		section = section[:end]
	}
	if !strings.Contains(section, "\n| 5 |") {
		t.Error("Expected a year-5 projection row")
	}
	if strings.Contains(section, "\n| 6 |") {
		t.Error("Projection should stop at the hold horizon")
	}
}

func TestCustomTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "123 Main St"

	md, err := Build(reportInputs(), opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.HasPrefix(md, "# 123 Main St") {
		t.Error("Report should open with the custom title")
	}
}
