package scenario

import (
	"testing"

	"investment_analytics/pkg/core/metrics"
)

func scenarioInputs() metrics.AnalyticsInputs {
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

func TestNewBookSeedsBase(t *testing.T) {
	b := NewBook(scenarioInputs())
	if b.Len() != 1 {
		t.Fatalf("Expected 1 scenario, got %d", b.Len())
	}
	base := b.Base()
	if base.ID != BaseID {
		t.Errorf("Base id should be %q, got %q", BaseID, base.ID)
	}
	if base.Metrics.LoanAmount != 320000 {
		t.Errorf("Base metrics must be derived on creation, loan %f", base.Metrics.LoanAmount)
	}
}

func TestSaveAssignsUniqueIDs(t *testing.T) {
	b := NewBook(scenarioInputs())

	in := scenarioInputs()
	in.MonthlyRent = 3500
	id1 := b.Save("Higher rent", in)

	in.PurchasePrice = 380000
	id2 := b.Save("Negotiated price", in)

	if id1 == id2 || id1 == BaseID || id2 == BaseID {
		t.Errorf("IDs must be unique and distinct from base: %q %q", id1, id2)
	}
	if b.Len() != 3 {
		t.Errorf("Expected 3 scenarios, got %d", b.Len())
	}

	list := b.List()
	if list[0].ID != BaseID || list[1].ID != id1 || list[2].ID != id2 {
		t.Error("List must preserve insertion order with base first")
	}
}

func TestBaseCannotBeDeleted(t *testing.T) {
	b := NewBook(scenarioInputs())
	if err := b.Delete(BaseID); err == nil {
		t.Error("Deleting the base must fail")
	}
	if b.Len() != 1 {
		t.Error("Base must survive the delete attempt")
	}
}

func TestDeleteScenario(t *testing.T) {
	b := NewBook(scenarioInputs())
	id := b.Save("Temp", scenarioInputs())

	if err := b.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := b.Get(id); ok {
		t.Error("Deleted scenario still retrievable")
	}
	if err := b.Delete(id); err == nil {
		t.Error("Double delete should fail")
	}
}

func TestCompareScenariosWithoutBook(t *testing.T) {
	// The store path compares loaded snapshots directly, no book involved.
	base := New(BaseID, "Base", scenarioInputs())

	better := scenarioInputs()
	better.MonthlyRent = 3600
	s := New("other", "Rent bump", better)

	c := CompareScenarios(base, s)
	if c.ID != "other" || c.Name != "Rent bump" {
		t.Errorf("Comparison should carry the scenario identity, got %+v", c)
	}
	if c.CashFlowDelta <= 0 {
		t.Errorf("Higher rent must improve cash flow, delta %f", c.CashFlowDelta)
	}
	if c.MonthlyCashFlow != s.Metrics.MonthlyCashFlow {
		t.Error("Comparison should carry the scenario's own cash flow")
	}
}

func TestCompareBaseIsZero(t *testing.T) {
	b := NewBook(scenarioInputs())
	c, err := b.Compare(BaseID)
	if err != nil {
		t.Fatalf("Compare(base) failed: %v", err)
	}
	if c.CashFlowDelta != 0 || c.CashOnCashDelta != 0 || c.ScoreDelta != 0 {
		t.Errorf("Base compared to itself must be all-zero deltas: %+v", c)
	}
}

func TestCompareDeltaSigns(t *testing.T) {
	b := NewBook(scenarioInputs())

	better := scenarioInputs()
	better.MonthlyRent = 3600
	id := b.Save("Rent bump", better)

	c, err := b.Compare(id)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if c.CashFlowDelta <= 0 {
		t.Errorf("Higher rent must improve cash flow, delta %f", c.CashFlowDelta)
	}
	if c.CashOnCashDelta <= 0 {
		t.Errorf("Higher rent must improve cash-on-cash, delta %f", c.CashOnCashDelta)
	}
}

func TestUpdateRebaselines(t *testing.T) {
	b := NewBook(scenarioInputs())

	alt := scenarioInputs()
	alt.MonthlyRent = 3600
	id := b.Save("Rent bump", alt)

	// Raise the base to the same rent: the delta collapses to zero.
	if err := b.Update(BaseID, alt); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	c, _ := b.Compare(id)
	if c.CashFlowDelta != 0 {
		t.Errorf("Expected zero delta after rebaselining, got %f", c.CashFlowDelta)
	}

	if err := b.Update("missing", alt); err == nil {
		t.Error("Updating an unknown id should fail")
	}
}

func TestCompareAllSorted(t *testing.T) {
	b := NewBook(scenarioInputs())

	worse := scenarioInputs()
	worse.MonthlyRent = 2800
	b.Save("Soft market", worse)

	better := scenarioInputs()
	better.MonthlyRent = 3600
	b.Save("Rent bump", better)

	all := b.CompareAll()
	if len(all) != 2 {
		t.Fatalf("Expected 2 comparisons, got %d", len(all))
	}
	if all[0].Name != "Rent bump" {
		t.Errorf("Best cash-flow delta must sort first, got %s", all[0].Name)
	}
}
