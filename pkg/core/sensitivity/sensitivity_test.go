package sensitivity

import (
	"math"
	"testing"

	"investment_analytics/pkg/core/metrics"
)

func sensInputs() metrics.AnalyticsInputs {
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
	}
}

func TestSweepRentDirection(t *testing.T) {
	r := Sweep(sensInputs(), VarMonthlyRent, nil)

	if len(r.Points) != len(DefaultDeltas) {
		t.Fatalf("Expected %d points, got %d", len(DefaultDeltas), len(r.Points))
	}
	if r.Direction != "positive" {
		t.Errorf("More rent means more cash flow; direction should be positive, got %s", r.Direction)
	}

	// Cash flow must be strictly increasing across the rent sweep.
	prev := math.Inf(-1)
	for _, p := range r.Points {
		if p.MonthlyCashFlow <= prev {
			t.Errorf("Cash flow not increasing at delta %f", p.DeltaPercent)
		}
		prev = p.MonthlyCashFlow
	}
}

func TestSweepVacancyDirection(t *testing.T) {
	r := Sweep(sensInputs(), VarVacancyRate, nil)
	if r.Direction != "negative" {
		t.Errorf("More vacancy means less cash flow; direction should be negative, got %s", r.Direction)
	}
}

func TestSweepImpactOrdering(t *testing.T) {
	// Rent at ±20% swings cash flow by hundreds of dollars; maintenance on
	// the same sweep moves it far less.
	rent := Sweep(sensInputs(), VarMonthlyRent, nil)
	if rent.Impact != "high" {
		t.Errorf("Expected high impact for rent, got %s", rent.Impact)
	}

	maint := Sweep(sensInputs(), VarMaintenanceRate, nil)
	if maint.Impact == "high" {
		t.Errorf("Maintenance rate should not out-rank rent, got %s", maint.Impact)
	}
}

func TestSweepDoesNotMutateInputs(t *testing.T) {
	in := sensInputs()
	Sweep(in, VarPurchasePrice, nil)
	if in.PurchasePrice != 400000 || in.MonthlyRent != 3200 {
		t.Error("Sweep mutated the caller's inputs")
	}
}

func TestSweepAllCoversEveryVariable(t *testing.T) {
	results := SweepAll(sensInputs())
	if len(results) != len(Variables()) {
		t.Fatalf("Expected %d results, got %d", len(Variables()), len(results))
	}
	for i, v := range Variables() {
		if results[i].Variable != v {
			t.Errorf("Result %d is %s, expected %s", i, results[i].Variable, v)
		}
	}
}

func TestFindBreakEvenRent(t *testing.T) {
	// The reference property cash flows at 3200 rent; scanning rent downward
	// must find the flip within the 50% bound.
	in := sensInputs()
	start := metrics.Calculate(in).MonthlyCashFlow
	if start <= 0 {
		t.Fatalf("Setup expected positive cash flow, got %f", start)
	}

	be := FindBreakEven(in, VarMonthlyRent)
	if !be.Found {
		t.Fatal("Expected a rent break-even within the scan bound")
	}
	if be.Value >= in.MonthlyRent {
		t.Errorf("Break-even rent must sit below current rent, got %f", be.Value)
	}
	if be.DeltaPercent >= 0 {
		t.Errorf("Expected a negative delta, got %f", be.DeltaPercent)
	}

	// Plugging the break-even value back in flips the sign.
	probe := in
	probe.MonthlyRent = be.Value
	if metrics.Calculate(probe).MonthlyCashFlow >= 0 {
		t.Error("Cash flow at the break-even rent should be negative")
	}
}

func TestFindBreakEvenNotFound(t *testing.T) {
	// A deeply underwater property: no ±100% maintenance change rescues it.
	in := sensInputs()
	in.MonthlyRent = 500
	be := FindBreakEven(in, VarMaintenanceRate)
	if be.Found {
		t.Errorf("Expected no break-even, got value %f", be.Value)
	}
}

func TestMonteCarloDeterministic(t *testing.T) {
	in := sensInputs()
	a := MonteCarlo(in, 500, 100, 42)
	b := MonteCarlo(in, 500, 100, 42)

	if a.MedianCashFlow != b.MedianCashFlow || a.P10CashFlow != b.P10CashFlow ||
		a.P90CashFlow != b.P90CashFlow || a.ProbPositive != b.ProbPositive {
		t.Error("Same seed must reproduce the same distribution")
	}
}

func TestMonteCarloDistributionShape(t *testing.T) {
	r := MonteCarlo(sensInputs(), 1000, 0, 7)

	if !(r.P10CashFlow <= r.MedianCashFlow && r.MedianCashFlow <= r.P90CashFlow) {
		t.Errorf("Percentiles out of order: p10 %f, median %f, p90 %f",
			r.P10CashFlow, r.MedianCashFlow, r.P90CashFlow)
	}
	if r.ProbPositive < 0 || r.ProbPositive > 100 {
		t.Errorf("Probability out of range: %f", r.ProbPositive)
	}
	// With a zero target the two probabilities coincide.
	if r.ProbAboveTarget != r.ProbPositive {
		t.Errorf("Expected equal probabilities at zero target: %f vs %f",
			r.ProbAboveTarget, r.ProbPositive)
	}

	// Draws cluster around the deterministic baseline.
	base := metrics.Calculate(sensInputs()).MonthlyCashFlow
	if math.Abs(r.MedianCashFlow-base) > 200 {
		t.Errorf("Median %f strays too far from baseline %f", r.MedianCashFlow, base)
	}
}

func TestMonteCarloZeroDraws(t *testing.T) {
	r := MonteCarlo(sensInputs(), 0, 0, 1)
	if r.MedianCashFlow != 0 || r.ProbPositive != 0 {
		t.Error("Zero draws should return an empty result")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	if p := percentile(sorted, 50); p != 30 {
		t.Errorf("Expected median 30, got %f", p)
	}
	if p := percentile(sorted, 0); p != 10 {
		t.Errorf("Expected p0 10, got %f", p)
	}
	if p := percentile(sorted, 100); p != 50 {
		t.Errorf("Expected p100 50, got %f", p)
	}
	if p := percentile(sorted, 25); p != 20 {
		t.Errorf("Expected p25 20, got %f", p)
	}
}
