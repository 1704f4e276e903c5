// Package scenario keeps named input snapshots side by side. The book is
// plain caller-owned state: the engine stays pure, and every scenario's
// metrics are recomputed from its inputs on save, never cached independently.
package scenario

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"investment_analytics/pkg/core/dealscore"
	"investment_analytics/pkg/core/metrics"
)

// BaseID is the reserved id of the baseline scenario. It always exists and
// cannot be deleted.
const BaseID = "base"

// Scenario is one named snapshot: inputs plus the metrics and score derived
// from them at save time.
type Scenario struct {
	ID      string                    `json:"id"`
	Name    string                    `json:"name"`
	Inputs  metrics.AnalyticsInputs   `json:"inputs"`
	Metrics metrics.CalculatedMetrics `json:"metrics"`
	Score   float64                   `json:"score"`
}

// Comparison is one scenario's deltas against the base.
type Comparison struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CashFlowDelta   float64 `json:"cash_flow_delta"`
	CashOnCashDelta float64 `json:"cash_on_cash_delta"`
	ScoreDelta      float64 `json:"score_delta"`
	MonthlyCashFlow float64 `json:"monthly_cash_flow"`
	CashOnCash      float64 `json:"cash_on_cash"`
	Score           float64 `json:"score"`
}

// Book is a mutable collection of scenarios with one designated base.
// It is not safe for concurrent use; callers own the locking if they share it.
type Book struct {
	scenarios map[string]Scenario
	order     []string // insertion order, base first
}

// New builds one snapshot with its derived values computed now. The store
// and the API save exactly what this returns; nothing derived is cached
// apart from its inputs.
func New(id, name string, in metrics.AnalyticsInputs) Scenario {
	return Scenario{
		ID:      id,
		Name:    name,
		Inputs:  in,
		Metrics: metrics.Calculate(in),
		Score:   dealscore.Evaluate(in).Score,
	}
}

// NewBook creates a book seeded with the base scenario.
func NewBook(baseInputs metrics.AnalyticsInputs) *Book {
	b := &Book{scenarios: make(map[string]Scenario)}
	b.scenarios[BaseID] = New(BaseID, "Base", baseInputs)
	b.order = []string{BaseID}
	return b
}

// Save adds a new named scenario and returns its generated id.
func (b *Book) Save(name string, in metrics.AnalyticsInputs) string {
	id := uuid.New().String()
	b.scenarios[id] = New(id, name, in)
	b.order = append(b.order, id)
	return id
}

// Update replaces an existing scenario's inputs, recomputing its derived
// values. Updating the base rebaselines every comparison.
func (b *Book) Update(id string, in metrics.AnalyticsInputs) error {
	existing, ok := b.scenarios[id]
	if !ok {
		return fmt.Errorf("scenario %q not found", id)
	}
	b.scenarios[id] = New(id, existing.Name, in)
	return nil
}

// Delete removes a scenario. The base is reserved and cannot be deleted.
func (b *Book) Delete(id string) error {
	if id == BaseID {
		return fmt.Errorf("the base scenario cannot be deleted")
	}
	if _, ok := b.scenarios[id]; !ok {
		return fmt.Errorf("scenario %q not found", id)
	}
	delete(b.scenarios, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns one scenario by id.
func (b *Book) Get(id string) (Scenario, bool) {
	s, ok := b.scenarios[id]
	return s, ok
}

// Base returns the baseline scenario.
func (b *Book) Base() Scenario {
	return b.scenarios[BaseID]
}

// List returns all scenarios in insertion order, base first.
func (b *Book) List() []Scenario {
	out := make([]Scenario, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.scenarios[id])
	}
	return out
}

// Len reports the number of scenarios, base included.
func (b *Book) Len() int {
	return len(b.scenarios)
}

// CompareScenarios returns s's deltas against base. Pure on both arguments:
// the book and the store both lean on it.
func CompareScenarios(base, s Scenario) Comparison {
	return Comparison{
		ID:              s.ID,
		Name:            s.Name,
		CashFlowDelta:   s.Metrics.MonthlyCashFlow - base.Metrics.MonthlyCashFlow,
		CashOnCashDelta: s.Metrics.CashOnCash - base.Metrics.CashOnCash,
		ScoreDelta:      s.Score - base.Score,
		MonthlyCashFlow: s.Metrics.MonthlyCashFlow,
		CashOnCash:      s.Metrics.CashOnCash,
		Score:           s.Score,
	}
}

// Compare returns one scenario's deltas against the base. Comparing the base
// against itself yields all-zero deltas.
func (b *Book) Compare(id string) (Comparison, error) {
	s, ok := b.scenarios[id]
	if !ok {
		return Comparison{}, fmt.Errorf("scenario %q not found", id)
	}
	return CompareScenarios(b.Base(), s), nil
}

// CompareAll compares every non-base scenario against the base, sorted by
// cash-flow delta, best first.
func (b *Book) CompareAll() []Comparison {
	out := make([]Comparison, 0, len(b.order)-1)
	for _, id := range b.order {
		if id == BaseID {
			continue
		}
		c, err := b.Compare(id)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CashFlowDelta > out[j].CashFlowDelta
	})
	return out
}
