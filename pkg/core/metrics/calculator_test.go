package metrics

import (
	"math"
	"testing"
)

// The reference property used throughout the engine tests.
func referenceInputs() AnalyticsInputs {
	return AnalyticsInputs{
		PurchasePrice:      400000,
		DownPaymentPercent: 20,
		ClosingCostPercent: 3,
		InterestRate:       6.0,
		LoanTermYears:      30,
		MonthlyRent:        2500,
		VacancyRate:        5,
		MaintenanceRate:    5,
		AnnualPropertyTax:  4800,
		AnnualInsurance:    1800,
	}
}

func TestCalculateReferenceProperty(t *testing.T) {
	m := Calculate(referenceInputs())

	// 400,000 × 80% = 320,000
	if m.LoanAmount != 320000 {
		t.Errorf("Expected loan 320000, got %f", m.LoanAmount)
	}
	if m.DownPayment != 80000 {
		t.Errorf("Expected down payment 80000, got %f", m.DownPayment)
	}

	// 320,000 @ 6%/30yr ≈ 1918.56
	if math.Abs(m.MonthlyPI-1918.56) > 0.01 {
		t.Errorf("Expected P&I ~1918.56, got %f", m.MonthlyPI)
	}

	// Expenses: vacancy 125 + maintenance 125 + tax 400 + insurance 150 = 800
	if math.Abs(m.MonthlyOperatingExpense-800) > 0.01 {
		t.Errorf("Expected opex 800, got %f", m.MonthlyOperatingExpense)
	}

	// NOI = (2500 - 800) × 12 = 20400
	if math.Abs(m.NOI-20400) > 0.01 {
		t.Errorf("Expected NOI 20400, got %f", m.NOI)
	}

	// DSCR sign must match sign of (NOI - debt service)
	diff := m.NOI - m.AnnualDebtService
	if diff < 0 && m.DSCR >= 1 {
		t.Errorf("NOI below debt service but DSCR %f >= 1", m.DSCR)
	}
	if diff > 0 && m.DSCR <= 1 {
		t.Errorf("NOI above debt service but DSCR %f <= 1", m.DSCR)
	}

	// Cap rate = 20400 / 400000 × 100 = 5.1
	if math.Abs(m.CapRate-5.1) > 0.001 {
		t.Errorf("Expected cap rate 5.1, got %f", m.CapRate)
	}

	// Cash flow = 2500 - 800 - 1918.56 ≈ -218.56
	if math.Abs(m.MonthlyCashFlow-(-218.56)) > 0.01 {
		t.Errorf("Expected cash flow ~-218.56, got %f", m.MonthlyCashFlow)
	}

	// 1% rule: 2500/400000 = 0.625%
	if math.Abs(m.OnePercentRule-0.625) > 0.001 {
		t.Errorf("Expected 1%%-rule ratio 0.625, got %f", m.OnePercentRule)
	}

	// GRM = 400000 / 30000 ≈ 13.33
	if math.Abs(m.GrossRentMultiplier-400000.0/30000.0) > 0.01 {
		t.Errorf("Unexpected GRM %f", m.GrossRentMultiplier)
	}
}

func TestCalculateZeroGuards(t *testing.T) {
	var zero AnalyticsInputs
	m := Calculate(zero)

	if m.CapRate != 0 {
		t.Errorf("Zero price should give cap rate 0, got %f", m.CapRate)
	}
	if m.CashOnCash != 0 {
		t.Errorf("Zero cash should give CoC 0, got %f", m.CashOnCash)
	}
	if !math.IsInf(m.DSCR, 1) && m.DSCR != 0 {
		// No debt and no NOI: 0/0 reports +Inf by the no-debt convention
		t.Errorf("Unexpected DSCR %f", m.DSCR)
	}
	if m.GrossRentMultiplier != 0 {
		t.Errorf("Zero rent should give GRM 0, got %f", m.GrossRentMultiplier)
	}
}

func TestBreakEvenRent(t *testing.T) {
	in := referenceInputs()
	rent := BreakEvenRent(in)

	// Plugging the break-even rent back in should zero the cash flow.
	probe := in
	probe.MonthlyRent = rent
	cf := Calculate(probe).MonthlyCashFlow
	if math.Abs(cf) > 0.01 {
		t.Errorf("Cash flow at break-even rent should be ~0, got %f", cf)
	}
}

func TestBreakEvenRentImpossible(t *testing.T) {
	in := referenceInputs()
	in.VacancyRate = 50
	in.MaintenanceRate = 30
	in.ManagementRate = 25 // 105% load: no rent breaks even
	if !math.IsInf(BreakEvenRent(in), 1) {
		t.Error("Expected +Inf break-even rent at >=100% expense load")
	}
}

func TestBreakEvenVacancy(t *testing.T) {
	in := referenceInputs()
	in.MonthlyRent = 3500 // positive cash flow at 5% vacancy

	v := BreakEvenVacancy(in)
	if v <= 0 || v >= 100 {
		t.Fatalf("Expected interior break-even vacancy, got %f", v)
	}

	probe := in
	probe.VacancyRate = v
	cf := Calculate(probe).MonthlyCashFlow
	if math.Abs(cf) > 0.01 {
		t.Errorf("Cash flow at break-even vacancy should be ~0, got %f", cf)
	}
}

func TestMaxAffordablePrice(t *testing.T) {
	in := referenceInputs()
	price := MaxAffordablePrice(in, 100)

	if price <= 0 {
		t.Fatal("Expected a positive affordable price")
	}

	// At the found price the target is met...
	probe := in
	probe.PurchasePrice = price
	if cf := Calculate(probe).MonthlyCashFlow; cf < 100-1 {
		t.Errorf("Cash flow %f at max price should meet target 100", cf)
	}

	// ...and one resolution step higher it is not.
	probe.PurchasePrice = price + 2*MaxPriceResolution
	if cf := Calculate(probe).MonthlyCashFlow; cf >= 100 {
		t.Errorf("Cash flow %f above max price should miss target", cf)
	}
}

func TestCashFlowMonotonicInPrice(t *testing.T) {
	in := referenceInputs()
	prev := math.Inf(1)
	for price := 100000.0; price <= 800000; price += 50000 {
		probe := in
		probe.PurchasePrice = price
		cf := Calculate(probe).MonthlyCashFlow
		if cf > prev {
			t.Fatalf("Cash flow increased with price at %f", price)
		}
		prev = cf
	}
}
