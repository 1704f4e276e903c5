package projection

import (
	"math"
	"testing"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/mortgage"
)

func projInputs() metrics.AnalyticsInputs {
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

func TestProjectYearsShape(t *testing.T) {
	rows := ProjectYears(projInputs(), 10)
	if len(rows) != 10 {
		t.Fatalf("Expected 10 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Year != i+1 {
			t.Errorf("Row %d has year %d", i, r.Year)
		}
		if r.TotalWealth != r.CumulativeCashFlow+r.Equity {
			t.Errorf("Year %d: total wealth is not cumulative CF + equity", r.Year)
		}
	}
}

func TestProjectionGrowth(t *testing.T) {
	in := projInputs()
	rows := ProjectYears(in, 10)

	// Value compounds at 3%: year 1 = 412000, year 10 = 400000×1.03^10
	if math.Abs(rows[0].PropertyValue-412000) > 0.01 {
		t.Errorf("Expected year-1 value 412000, got %f", rows[0].PropertyValue)
	}
	expected10 := 400000 * math.Pow(1.03, 10)
	if math.Abs(rows[9].PropertyValue-expected10) > 0.01 {
		t.Errorf("Expected year-10 value %f, got %f", expected10, rows[9].PropertyValue)
	}

	// Rent grows from the base in year 1 (no growth applied yet).
	if math.Abs(rows[0].AnnualRent-3200*12) > 0.01 {
		t.Errorf("Year-1 rent should be the base rent, got %f", rows[0].AnnualRent)
	}
	if rows[9].AnnualRent <= rows[0].AnnualRent {
		t.Error("Rent must grow across the projection")
	}

	// Equity = value − closed-form balance.
	loan := 320000.0
	for _, year := range []int{1, 5, 10} {
		r := rows[year-1]
		balance := mortgage.RemainingBalance(loan, in.InterestRate, in.LoanTermYears, float64(year))
		if math.Abs(r.Equity-(r.PropertyValue-balance)) > 0.01 {
			t.Errorf("Year %d equity mismatch", year)
		}
	}
}

func TestProjectionPastLoanTerm(t *testing.T) {
	// A 15-year loan projected 20 years: once the loan retires, the payment
	// stops with the balance.
	in := projInputs()
	in.LoanTermYears = 15
	rows := ProjectYears(in, 20)

	year16 := rows[15]
	if year16.LoanBalance != 0 {
		t.Errorf("Year-16 balance should be 0, got %f", year16.LoanBalance)
	}
	if math.Abs(year16.Equity-year16.PropertyValue) > 0.01 {
		t.Error("With the loan retired, equity must equal property value")
	}

	// Cash flow jumps by roughly the retired annual debt service between the
	// final loan year and the first free-and-clear year.
	payment := mortgage.MonthlyPayment(320000, in.InterestRate, 15)
	jump := rows[15].AnnualCashFlow - rows[14].AnnualCashFlow
	if jump < payment*12*0.9 {
		t.Errorf("Expected cash flow to recover the debt service (~%f), jump was %f",
			payment*12, jump)
	}
}

func TestTaxRowsPastLoanTerm(t *testing.T) {
	in := projInputs()
	in.LoanTermYears = 15
	cfg := DepreciationConfig{LandValuePercent: 20, MarginalTaxRate: 24}

	rows := ProjectAnnualTax(in, cfg, 20)
	year16 := rows[15]
	if year16.MortgageInterest != 0 {
		t.Errorf("No interest deduction after payoff, got %f", year16.MortgageInterest)
	}
	// With no debt service, NOI and pre-tax cash flow coincide.
	if math.Abs(year16.NOI-year16.PreTaxCashFlow) > 0.001 {
		t.Errorf("NOI %f should equal pre-tax cash flow %f after payoff",
			year16.NOI, year16.PreTaxCashFlow)
	}
}

func TestProjectYearRandomAccess(t *testing.T) {
	// Any row must be derivable without replaying prior rows.
	in := projInputs()
	rows := ProjectYears(in, 10)
	solo := ProjectYear(in, 7)

	full := rows[6]
	if math.Abs(solo.PropertyValue-full.PropertyValue) > 1e-9 ||
		math.Abs(solo.AnnualCashFlow-full.AnnualCashFlow) > 1e-9 ||
		math.Abs(solo.LoanBalance-full.LoanBalance) > 1e-9 {
		t.Error("ProjectYear(7) disagrees with the full projection")
	}
}

func TestTaxProjectionDeductions(t *testing.T) {
	in := projInputs()
	cfg := DepreciationConfig{LandValuePercent: 20, MarginalTaxRate: 24}

	// Basis = 400000×0.80 + 12000×0.60 = 327200; annual = 327200/27.5
	basis := DepreciableBasis(in, cfg)
	if math.Abs(basis-327200) > 0.01 {
		t.Fatalf("Expected basis 327200, got %f", basis)
	}
	dep := AnnualDepreciation(in, cfg)
	if math.Abs(dep-327200/27.5) > 0.01 {
		t.Errorf("Expected depreciation %f, got %f", 327200/27.5, dep)
	}

	rows := ProjectAnnualTax(in, cfg, 10)
	if len(rows) != 10 {
		t.Fatalf("Expected 10 tax rows, got %d", len(rows))
	}

	r := rows[0]
	// Taxable income = NOI − interest − depreciation, never minus principal.
	expected := r.NOI - r.MortgageInterest - r.Depreciation
	if math.Abs(r.TaxableIncome-expected) > 0.001 {
		t.Errorf("Taxable income mismatch: %f vs %f", r.TaxableIncome, expected)
	}
	if math.Abs(r.TaxLiability-r.TaxableIncome*0.24) > 0.01 {
		t.Errorf("Liability should be 24%% of taxable income")
	}
	if math.Abs(r.AfterTaxCashFlow-(r.PreTaxCashFlow-r.TaxLiability)) > 0.001 {
		t.Error("After-tax cash flow mismatch")
	}
}

func TestNegativeTaxableIncomeIsBenefit(t *testing.T) {
	in := projInputs()
	in.MonthlyRent = 1800 // thin NOI: depreciation pushes taxable income negative
	cfg := DepreciationConfig{LandValuePercent: 20, MarginalTaxRate: 32}

	rows := ProjectAnnualTax(in, cfg, 3)
	r := rows[0]
	if r.TaxableIncome >= 0 {
		t.Fatalf("Setup expected negative taxable income, got %f", r.TaxableIncome)
	}
	// Negative taxable income is a benefit: liability < 0 and after-tax cash
	// flow exceeds pre-tax.
	if r.TaxLiability >= 0 {
		t.Errorf("Expected negative liability, got %f", r.TaxLiability)
	}
	if r.AfterTaxCashFlow <= r.PreTaxCashFlow {
		t.Error("Tax benefit should raise after-tax cash flow above pre-tax")
	}
}

func TestCommercialLife(t *testing.T) {
	in := projInputs()
	res := AnnualDepreciation(in, DepreciationConfig{LandValuePercent: 20})
	com := AnnualDepreciation(in, DepreciationConfig{LandValuePercent: 20, Commercial: true})
	if !(com < res) {
		t.Error("39-year commercial depreciation must be smaller per year than 27.5-year residential")
	}
}

func TestAccumulatedDepreciationCap(t *testing.T) {
	in := projInputs()
	cfg := DepreciationConfig{LandValuePercent: 20}

	ten := AccumulatedDepreciation(in, cfg, 10)
	if math.Abs(ten-AnnualDepreciation(in, cfg)*10) > 0.01 {
		t.Errorf("10-year accumulation mismatch: %f", ten)
	}

	// Past the useful life the accumulation stops at the basis.
	forty := AccumulatedDepreciation(in, cfg, 40)
	if math.Abs(forty-DepreciableBasis(in, cfg)) > 0.01 {
		t.Errorf("Accumulation past useful life should equal basis, got %f", forty)
	}
}
