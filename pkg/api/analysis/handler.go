// Package analysis exposes the engine over HTTP. Handlers are glue only:
// decode, call the pure engine, encode. No financial logic lives here.
package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"investment_analytics/pkg/core/dealscore"
	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/projection"
	"investment_analytics/pkg/core/report"
	"investment_analytics/pkg/core/sensitivity"
	"investment_analytics/pkg/core/strategy"
	"investment_analytics/pkg/core/utils"
)

func applyCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// decodeBody reads the request body leniently: strict JSON first, repaired
// JSON or hjson if a tolerant client sent something close.
func decodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if _, err := utils.SmartParse(string(body), dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// DealScoreRequest carries one input snapshot.
type DealScoreRequest struct {
	Inputs metrics.AnalyticsInputs `json:"inputs"`
}

// DealScoreResponse bundles the score with the underlying metrics.
type DealScoreResponse struct {
	Score   dealscore.DealScore       `json:"score"`
	Metrics metrics.CalculatedMetrics `json:"metrics"`
}

// HandleDealScore computes the deal score for a posted input snapshot.
func HandleDealScore(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req DealScoreRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[ANALYSIS] Deal score request: price %.0f, rent %.0f\n",
		req.Inputs.PurchasePrice, req.Inputs.MonthlyRent)

	writeJSON(w, DealScoreResponse{
		Score:   dealscore.Evaluate(req.Inputs),
		Metrics: metrics.Calculate(req.Inputs),
	})
}

// HandleStrategies ranks all six strategies for a posted input snapshot.
func HandleStrategies(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req DealScoreRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := strategy.AnalyzeAll(req.Inputs)
	fmt.Printf("[ANALYSIS] Strategy ranking: best %s (%.0f)\n",
		result.BestStrategy, result.BestScore)
	writeJSON(w, result)
}

// ProjectionRequest asks for a multi-year projection, optionally tax-adjusted.
type ProjectionRequest struct {
	Inputs metrics.AnalyticsInputs        `json:"inputs"`
	Years  int                            `json:"years"`
	Tax    *projection.DepreciationConfig `json:"tax,omitempty"`
}

// ProjectionResponse returns the year rows plus tax rows when requested.
type ProjectionResponse struct {
	Years []projection.YearProjection      `json:"years"`
	Tax   []projection.AnnualTaxProjection `json:"tax,omitempty"`
}

// HandleProjection runs the year-by-year projection.
func HandleProjection(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req ProjectionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Years <= 0 {
		req.Years = 10
	}

	fmt.Printf("[ANALYSIS] Projection request: %d years, tax=%v\n", req.Years, req.Tax != nil)

	resp := ProjectionResponse{Years: projection.ProjectYears(req.Inputs, req.Years)}
	if req.Tax != nil {
		resp.Tax = projection.ProjectAnnualTax(req.Inputs, *req.Tax, req.Years)
	}
	writeJSON(w, resp)
}

// SensitivityRequest asks for sweeps and an optional Monte Carlo run.
type SensitivityRequest struct {
	Inputs metrics.AnalyticsInputs `json:"inputs"`
	Draws  int                     `json:"draws"`
	Target float64                 `json:"target_cash_flow"`
	Seed   int64                   `json:"seed"`
}

// SensitivityResponse carries every variable's sweep plus the simulation.
type SensitivityResponse struct {
	Sweeps     []sensitivity.SweepResult     `json:"sweeps"`
	MonteCarlo *sensitivity.MonteCarloResult `json:"monte_carlo,omitempty"`
}

// HandleSensitivity runs the sensitivity sweeps and, when draws > 0, the
// Monte Carlo simulation.
func HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req SensitivityRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[ANALYSIS] Sensitivity request: %d draws\n", req.Draws)

	resp := SensitivityResponse{Sweeps: sensitivity.SweepAll(req.Inputs)}
	if req.Draws > 0 {
		mc := sensitivity.MonteCarlo(req.Inputs, req.Draws, req.Target, req.Seed)
		resp.MonteCarlo = &mc
	}
	writeJSON(w, resp)
}

// ReportRequest asks for the full markdown report.
type ReportRequest struct {
	Inputs  metrics.AnalyticsInputs `json:"inputs"`
	Options *report.Options         `json:"options,omitempty"`
	HTML    bool                    `json:"html"`
}

// ReportResponse carries the rendered document.
type ReportResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// HandleReport builds the full analysis report.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req ReportRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := report.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	fmt.Printf("[ANALYSIS] Report request: %q, %d-year hold\n", opts.Title, opts.HoldYears)

	md, err := report.Build(req.Inputs, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := ReportResponse{Markdown: md}
	if req.HTML {
		html, err := utils.RenderHTML(md)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.HTML = html
	}
	writeJSON(w, resp)
}
