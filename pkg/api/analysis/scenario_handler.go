package analysis

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/scenario"
	"investment_analytics/pkg/core/store"
)

var scenarioRepo = store.NewScenarioRepo()

// ScenarioSaveRequest names a snapshot to persist. An empty id means a new
// scenario; passing an existing id (or "base") overwrites it.
type ScenarioSaveRequest struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Inputs metrics.AnalyticsInputs `json:"inputs"`
}

// HandleScenarioSave snapshots the inputs (metrics and score computed now)
// and upserts the scenario in the store.
func HandleScenarioSave(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req ScenarioSaveRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "scenario name is required", http.StatusBadRequest)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	s := scenario.New(id, req.Name, req.Inputs)
	if err := scenarioRepo.Save(r.Context(), s); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[SCENARIO] Saved %q (%s)\n", s.Name, s.ID)
	writeJSON(w, s)
}

// HandleScenarioList returns every saved scenario.
func HandleScenarioList(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	scenarios, err := scenarioRepo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, scenarios)
}

// HandleScenarioCompare loads the named scenario and the saved base and
// returns the deltas between them. ?id=<scenario id>.
func HandleScenarioCompare(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	base, err := scenarioRepo.Load(r.Context(), scenario.BaseID)
	if err != nil {
		http.Error(w, fmt.Sprintf("no saved base scenario: %v", err), http.StatusNotFound)
		return
	}
	s, err := scenarioRepo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, scenario.CompareScenarios(base, s))
}

// HandleScenarioDelete removes a saved scenario. ?id=<scenario id>; the base
// scenario is reserved and refused.
func HandleScenarioDelete(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := scenarioRepo.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[SCENARIO] Deleted %s\n", id)
	writeJSON(w, map[string]string{"deleted": id})
}
