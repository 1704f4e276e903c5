package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const requestBody = `{
	"inputs": {
		"purchase_price": 400000,
		"down_payment_percent": 20,
		"closing_cost_percent": 3,
		"interest_rate": 6.0,
		"loan_term_years": 30,
		"monthly_rent": 2500,
		"vacancy_rate": 5,
		"maintenance_rate": 5,
		"annual_property_tax": 4800,
		"annual_insurance": 1800
	}
}`

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleDealScore(t *testing.T) {
	w := post(t, HandleDealScore, requestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp DealScoreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if resp.Metrics.LoanAmount != 320000 {
		t.Errorf("Expected loan 320000, got %f", resp.Metrics.LoanAmount)
	}
	if resp.Score.Score < 0 || resp.Score.Score > 100 {
		t.Errorf("Score out of range: %f", resp.Score.Score)
	}
}

func TestHandleDealScoreLenientBody(t *testing.T) {
	// Trailing comma: tolerated through the lenient decode path.
	lenient := strings.Replace(requestBody, `"annual_insurance": 1800`,
		`"annual_insurance": 1800,`, 1)
	w := post(t, HandleDealScore, lenient)
	if w.Code != http.StatusOK {
		t.Errorf("Lenient body rejected: %d", w.Code)
	}
}

func TestHandleDealScoreBadBody(t *testing.T) {
	w := post(t, HandleDealScore, "<not json>")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleStrategies(t *testing.T) {
	w := post(t, HandleStrategies, requestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Analyses     []json.RawMessage `json:"analyses"`
		BestStrategy string            `json:"best_strategy"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if len(resp.Analyses) != 6 {
		t.Errorf("Expected 6 analyses, got %d", len(resp.Analyses))
	}
	if resp.BestStrategy == "" {
		t.Error("Expected a best strategy")
	}
}

func TestHandleProjectionDefaultsToTenYears(t *testing.T) {
	w := post(t, HandleProjection, requestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp ProjectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if len(resp.Years) != 10 {
		t.Errorf("Expected 10 default years, got %d", len(resp.Years))
	}
	if resp.Tax != nil {
		t.Error("Tax rows should be absent without a tax config")
	}
}

func TestHandleProjectionWithTax(t *testing.T) {
	body := strings.TrimSuffix(strings.TrimSpace(requestBody), "}") +
		`, "years": 5, "tax": {"land_value_percent": 20, "marginal_tax_rate": 24}}`
	w := post(t, HandleProjection, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ProjectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if len(resp.Years) != 5 || len(resp.Tax) != 5 {
		t.Errorf("Expected 5 year and 5 tax rows, got %d / %d", len(resp.Years), len(resp.Tax))
	}
}

func TestHandleSensitivity(t *testing.T) {
	body := strings.TrimSuffix(strings.TrimSpace(requestBody), "}") +
		`, "draws": 200, "seed": 42}`
	w := post(t, HandleSensitivity, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp SensitivityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if len(resp.Sweeps) == 0 {
		t.Error("Expected sweep results")
	}
	if resp.MonteCarlo == nil || resp.MonteCarlo.Draws != 200 {
		t.Error("Expected a 200-draw Monte Carlo result")
	}
}

func TestHandleReport(t *testing.T) {
	w := post(t, HandleReport, requestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response JSON: %v", err)
	}
	if !strings.Contains(resp.Markdown, "## Deal Score") {
		t.Error("Report body missing deal-score section")
	}
	if resp.HTML != "" {
		t.Error("HTML should be absent unless requested")
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/", nil)
	w := httptest.NewRecorder()
	HandleDealScore(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Preflight should return 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing CORS origin header")
	}
}
