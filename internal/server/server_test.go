package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/sales-roi-forecast/internal/config"
	"github.com/iwvelando/sales-roi-forecast/internal/report"
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"go.uber.org/zap"
)

const defaultMetricsJSON = `{"teamSize":10,"avgDealSize":5000,"currentCloseRate":20,"salesCycleLength":30,"leadsPerMonth":100}`

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	handler, err := NewHandler(zap.NewNop(), opts)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler
}

func doRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response: %v (%s)", err, rr.Body.String())
	}
}

func TestHandleCalculateSuccess(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := doRequest(handler, http.MethodPost, "/api/roi", `{"metrics":`+defaultMetricsJSON+`,"scenario":"average"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var resp projectionResponse
	decodeBody(t, rr, &resp)

	if resp.Scenario != roi.Average || !resp.ScenarioRecognized {
		t.Fatalf("expected recognized average scenario, got %s (%v)", resp.Scenario, resp.ScenarioRecognized)
	}
	if resp.Result.ImprovedCloseRate != 25 {
		t.Errorf("expected improved close rate 25, got %v", resp.Result.ImprovedCloseRate)
	}
	if resp.Result.ReducedSalesCycleLength != 24 {
		t.Errorf("expected reduced cycle 24, got %d", resp.Result.ReducedSalesCycleLength)
	}
	if resp.Formatted.AnnualRevenueIncrease != "$300,000" {
		t.Errorf("expected formatted annual increase $300,000, got %s", resp.Formatted.AnnualRevenueIncrease)
	}
	if resp.Formatted.ROIPercentage != "2,500.0%" {
		t.Errorf("expected formatted ROI 2,500.0%%, got %s", resp.Formatted.ROIPercentage)
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
}

func TestHandleCalculateScenarioResolution(t *testing.T) {
	tests := []struct {
		name           string
		defaults       config.Defaults
		scenario       string
		wantScenario   roi.Scenario
		wantRecognized bool
	}{
		{name: "mixed case", scenario: "  Optimistic ", wantScenario: roi.Optimistic, wantRecognized: true},
		{name: "unknown falls back", scenario: "aggressive", wantScenario: roi.Average, wantRecognized: false},
		{name: "empty uses default", defaults: config.Defaults{Scenario: "conservative"}, wantScenario: roi.Conservative, wantRecognized: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, Options{Defaults: tt.defaults})
			body, _ := json.Marshal(map[string]interface{}{
				"metrics":  json.RawMessage(defaultMetricsJSON),
				"scenario": tt.scenario,
			})

			rr := doRequest(handler, http.MethodPost, "/api/roi", string(body))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp projectionResponse
			decodeBody(t, rr, &resp)
			if resp.Scenario != tt.wantScenario {
				t.Errorf("expected scenario %s, got %s", tt.wantScenario, resp.Scenario)
			}
			if resp.ScenarioRecognized != tt.wantRecognized {
				t.Errorf("expected recognized=%v, got %v", tt.wantRecognized, resp.ScenarioRecognized)
			}
			if resp.Coefficients != roi.CoefficientsFor(tt.wantScenario) {
				t.Errorf("expected coefficients for %s, got %+v", tt.wantScenario, resp.Coefficients)
			}
		})
	}
}

func TestHandleCalculateInvalidMetrics(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := doRequest(handler, http.MethodPost, "/api/roi",
		`{"metrics":{"teamSize":0,"avgDealSize":5000,"currentCloseRate":150,"salesCycleLength":30,"leadsPerMonth":100}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp errorResponse
	decodeBody(t, rr, &resp)
	if len(resp.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", resp.Fields)
	}
	if resp.Fields[0].Field != "teamSize" || resp.Fields[1].Field != "currentCloseRate" {
		t.Errorf("unexpected field errors %+v", resp.Fields)
	}
}

func TestHandleCalculateBadRequests(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"metrics":`},
		{name: "missing metrics", body: `{"scenario":"average"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(handler, http.MethodPost, "/api/roi", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp errorResponse
			decodeBody(t, rr, &resp)
			if resp.Error == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	for _, target := range []string{"/api/roi", "/api/roi/compare", "/api/roi/report"} {
		rr := doRequest(handler, http.MethodGet, target, "")
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected status 405, got %d", target, rr.Code)
		}
	}
	for _, target := range []string{"/api/scenarios", "/api/pricing", "/api/integrations", "/api/models", "/api/case-studies", "/api/version"} {
		rr := doRequest(handler, http.MethodPost, target, "{}")
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected status 405, got %d", target, rr.Code)
		}
	}
}

func TestHandleCalculateBodyTooLarge(t *testing.T) {
	handler := newTestHandler(t, Options{MaxUploadSize: 64})

	body := `{"metrics":` + defaultMetricsJSON + `,"scenario":"` + strings.Repeat("a", 128) + `"}`
	rr := doRequest(handler, http.MethodPost, "/api/roi", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleCompare(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := doRequest(handler, http.MethodPost, "/api/roi/compare", `{"metrics":`+defaultMetricsJSON+`}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp compareResponse
	decodeBody(t, rr, &resp)
	if len(resp.Projections) != 3 {
		t.Fatalf("expected 3 projections, got %d", len(resp.Projections))
	}

	want := roi.Scenarios()
	for i, p := range resp.Projections {
		if p.Scenario != want[i] {
			t.Errorf("projection %d: expected %s, got %s", i, want[i], p.Scenario)
		}
		if i > 0 && p.Result.AnnualRevenueIncrease < resp.Projections[i-1].Result.AnnualRevenueIncrease {
			t.Errorf("expected annual increase to grow with optimism, got %v after %v",
				p.Result.AnnualRevenueIncrease, resp.Projections[i-1].Result.AnnualRevenueIncrease)
		}
	}

	rr = doRequest(handler, http.MethodPost, "/api/roi/compare",
		`{"metrics":{"teamSize":10,"avgDealSize":0,"currentCloseRate":20,"salesCycleLength":30,"leadsPerMonth":100}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid metrics, got %d", rr.Code)
	}
}

func TestHandleReport(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		name       string
		format     string
		wantFormat string
		contains   string
	}{
		{name: "default markdown", format: "", wantFormat: "markdown", contains: "# " + report.Title},
		{name: "html", format: "HTML", wantFormat: "html", contains: "<table>"},
		{name: "csv", format: "csv", wantFormat: "csv", contains: "scenario,team size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]interface{}{
				"metrics":  json.RawMessage(defaultMetricsJSON),
				"scenario": "optimistic",
				"format":   tt.format,
				"email":    "rep@example.com",
			})
			rr := doRequest(handler, http.MethodPost, "/api/roi/report", string(body))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp reportResponse
			decodeBody(t, rr, &resp)
			if resp.ID == "" {
				t.Error("expected report ID")
			}
			if resp.Format != tt.wantFormat {
				t.Errorf("expected format %s, got %s", tt.wantFormat, resp.Format)
			}
			if !strings.Contains(resp.Content, tt.contains) {
				t.Errorf("expected content to contain %q, got %s", tt.contains, resp.Content)
			}
			if resp.Recipient != "rep@example.com" {
				t.Errorf("expected recipient echoed, got %q", resp.Recipient)
			}
		})
	}
}

func TestHandleReportRejectsBadInput(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		name string
		body string
	}{
		{name: "bad email", body: `{"metrics":` + defaultMetricsJSON + `,"email":"not-an-email"}`},
		{name: "bad format", body: `{"metrics":` + defaultMetricsJSON + `,"format":"pdf"}`},
		{name: "bad metrics", body: `{"metrics":{"teamSize":-1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(handler, http.MethodPost, "/api/roi/report", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleScenarios(t *testing.T) {
	handler := newTestHandler(t, Options{Defaults: config.Defaults{Scenario: "optimistic"}})

	rr := doRequest(handler, http.MethodGet, "/api/scenarios", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Default   roi.Scenario `json:"default"`
		Scenarios []struct {
			Name         roi.Scenario     `json:"name"`
			Coefficients roi.Coefficients `json:"coefficients"`
		} `json:"scenarios"`
	}
	decodeBody(t, rr, &resp)

	if resp.Default != roi.Optimistic {
		t.Errorf("expected default optimistic, got %s", resp.Default)
	}
	if len(resp.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(resp.Scenarios))
	}
	if resp.Scenarios[0].Name != roi.Conservative || resp.Scenarios[0].Coefficients.CloseRateImprovement != 0.15 {
		t.Errorf("unexpected first scenario %+v", resp.Scenarios[0])
	}
}

func TestHandlePricing(t *testing.T) {
	handler := newTestHandler(t, Options{})

	var resp struct {
		Billing     string  `json:"billing"`
		MaxSavings  float64 `json:"maxAnnualSavingsPercent"`
		Recommended string  `json:"recommended"`
		Plans      []struct {
			Name  string   `json:"name"`
			Price *float64 `json:"price"`
		} `json:"plans"`
	}

	rr := doRequest(handler, http.MethodGet, "/api/pricing?billing=annual", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	decodeBody(t, rr, &resp)

	if resp.Billing != "annual" {
		t.Errorf("expected annual billing, got %s", resp.Billing)
	}
	if len(resp.Plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(resp.Plans))
	}
	if resp.Plans[0].Price == nil || *resp.Plans[0].Price != 24 {
		t.Errorf("expected Starter annual price 24, got %v", resp.Plans[0].Price)
	}
	if resp.Plans[2].Price != nil {
		t.Errorf("expected custom pricing for %s, got %v", resp.Plans[2].Name, *resp.Plans[2].Price)
	}
	if resp.Recommended != "Professional" {
		t.Errorf("expected Professional to be recommended, got %q", resp.Recommended)
	}
	if resp.MaxSavings <= 0 {
		t.Errorf("expected positive annual savings, got %v", resp.MaxSavings)
	}

	rr = doRequest(handler, http.MethodGet, "/api/pricing", "")
	decodeBody(t, rr, &resp)
	if resp.Billing != "monthly" || resp.Plans[0].Price == nil || *resp.Plans[0].Price != 29 {
		t.Errorf("expected monthly Starter price 29 by default, got %s %v", resp.Billing, resp.Plans[0].Price)
	}

	rr = doRequest(handler, http.MethodGet, "/api/pricing?billing=weekly", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown billing cycle, got %d", rr.Code)
	}
}

func TestHandleIntegrations(t *testing.T) {
	handler := newTestHandler(t, Options{})

	var resp struct {
		Total  int `json:"total"`
		Groups []struct {
			Category     string `json:"category"`
			Integrations []struct {
				ID string `json:"id"`
			} `json:"integrations"`
		} `json:"groups"`
	}

	rr := doRequest(handler, http.MethodGet, "/api/integrations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	decodeBody(t, rr, &resp)
	if resp.Total != 8 {
		t.Errorf("expected 8 integrations, got %d", resp.Total)
	}
	if len(resp.Groups) == 0 || resp.Groups[0].Category != "CRM" {
		t.Errorf("expected CRM group first, got %+v", resp.Groups)
	}

	rr = doRequest(handler, http.MethodGet, "/api/integrations?q=SALES&category=CRM", "")
	decodeBody(t, rr, &resp)
	for _, group := range resp.Groups {
		if group.Category != "CRM" {
			t.Errorf("expected only CRM results, got %s", group.Category)
		}
	}
}

func TestHandleIntegrationsUsesRawTerm(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := map[string]int{
		"/api/integrations?q=gong":       1,
		"/api/integrations?q=%20gong":    1,
		"/api/integrations?q=%20%20gong": 0,
		"/api/integrations?q=gong%20":    0,
	}
	for target, expected := range tests {
		var resp struct {
			Total int `json:"total"`
		}
		rr := doRequest(handler, http.MethodGet, target, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rr.Code)
		}
		decodeBody(t, rr, &resp)
		if resp.Total != expected {
			t.Errorf("%s: expected %d matches, got %d", target, expected, resp.Total)
		}
	}
}

func TestHandleModels(t *testing.T) {
	handler := newTestHandler(t, Options{})

	type modelsResponse struct {
		Table struct {
			Detail  string `json:"detail"`
			Columns []struct {
				Key     string `json:"key"`
				Header  string `json:"header"`
				Tooltip string `json:"tooltip"`
			} `json:"columns"`
			Rows []struct {
				ID           int               `json:"id"`
				Model        string            `json:"model"`
				SalesWhisper bool              `json:"isSalesWhisper"`
				Values       map[string]string `json:"values"`
			} `json:"rows"`
			Glossary map[string]string `json:"glossary"`
		} `json:"table"`
		Performance []struct {
			Metric string         `json:"metric"`
			Scores map[string]int `json:"scores"`
		} `json:"performance"`
		Timeline []struct {
			Year  int    `json:"year"`
			Title string `json:"title"`
		} `json:"timeline"`
		Outputs struct {
			Input   string `json:"input"`
			Samples []struct {
				Model string `json:"model"`
			} `json:"samples"`
		} `json:"outputs"`
	}

	t.Run("default is business", func(t *testing.T) {
		var resp modelsResponse
		rr := doRequest(handler, http.MethodGet, "/api/models", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}
		decodeBody(t, rr, &resp)

		if resp.Table.Detail != "business" {
			t.Errorf("expected business detail, got %q", resp.Table.Detail)
		}
		if len(resp.Table.Columns) != 4 || resp.Table.Columns[0].Header != "Primary Use" {
			t.Errorf("unexpected business columns %+v", resp.Table.Columns)
		}
		if len(resp.Table.Rows) != 3 {
			t.Fatalf("expected 3 models, got %d", len(resp.Table.Rows))
		}
		last := resp.Table.Rows[2]
		if last.Model != "Fine-tuned GPT" || !last.SalesWhisper || last.Values["accuracy"] != "98%" {
			t.Errorf("unexpected fine-tuned row %+v", last)
		}
		if len(resp.Performance) != 5 || resp.Performance[1].Metric != "Response Time" || resp.Performance[1].Scores["GPT-3.5"] != 90 {
			t.Errorf("unexpected performance data %+v", resp.Performance)
		}
		if len(resp.Timeline) != 8 || resp.Timeline[0].Year != 2020 || resp.Timeline[7].Year != 2024 {
			t.Errorf("unexpected timeline %+v", resp.Timeline)
		}
		if len(resp.Outputs.Samples) != 3 || resp.Outputs.Input == "" {
			t.Errorf("unexpected output comparison %+v", resp.Outputs)
		}
	})

	t.Run("technical", func(t *testing.T) {
		var resp modelsResponse
		rr := doRequest(handler, http.MethodGet, "/api/models?detail=technical", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}
		decodeBody(t, rr, &resp)

		if resp.Table.Detail != "technical" || len(resp.Table.Columns) != 6 {
			t.Fatalf("unexpected technical table %+v", resp.Table)
		}
		if got := resp.Table.Rows[0].Values["parameters"]; got != "175 billion" {
			t.Errorf("expected GPT-3.5 parameters 175 billion, got %q", got)
		}
		if got := resp.Table.Rows[1].Values["tokenProcessing"]; got != "3,000/minute" {
			t.Errorf("expected GPT-4 token processing 3,000/minute, got %q", got)
		}
		if _, ok := resp.Table.Glossary["RLHF"]; !ok {
			t.Errorf("expected RLHF glossary entry, got %+v", resp.Table.Glossary)
		}
	})

	t.Run("unknown detail", func(t *testing.T) {
		rr := doRequest(handler, http.MethodGet, "/api/models?detail=executive", "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "detail level") {
			t.Errorf("expected detail level error, got %s", rr.Body.String())
		}
	})
}

func TestHandleCaseStudies(t *testing.T) {
	handler := newTestHandler(t, Options{})

	var resp struct {
		Total      int      `json:"total"`
		HasMore    bool     `json:"hasMore"`
		Industries []string `json:"industries"`
		Studies    []struct {
			ID               string `json:"id"`
			Industry         string `json:"industry"`
			CompanySize      string `json:"companySize"`
			CompanySizeLabel string `json:"companySizeLabel"`
		} `json:"studies"`
	}

	rr := doRequest(handler, http.MethodGet, "/api/case-studies", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	decodeBody(t, rr, &resp)
	if resp.Total != 5 || len(resp.Studies) != 3 || !resp.HasMore {
		t.Errorf("expected first page of 3 out of 5, got %d of %d (hasMore=%v)", len(resp.Studies), resp.Total, resp.HasMore)
	}
	if len(resp.Industries) != 5 {
		t.Errorf("expected 5 industries, got %v", resp.Industries)
	}

	rr = doRequest(handler, http.MethodGet, "/api/case-studies?filter=enterprise&limit=10", "")
	decodeBody(t, rr, &resp)
	if resp.Total != 2 || resp.HasMore {
		t.Errorf("expected 2 enterprise studies, got %d (hasMore=%v)", resp.Total, resp.HasMore)
	}
	for _, study := range resp.Studies {
		if study.CompanySize != "enterprise" || study.CompanySizeLabel != "Global Enterprise" {
			t.Errorf("expected labelled enterprise study, got %+v", study)
		}
	}

	rr = doRequest(handler, http.MethodGet, "/api/case-studies?filter=Aerospace", "")
	decodeBody(t, rr, &resp)
	if resp.Total != 0 || len(resp.Studies) != 0 {
		t.Errorf("expected no studies, got %d", resp.Total)
	}

	rr = doRequest(handler, http.MethodGet, "/api/case-studies?limit=0", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for zero limit, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{version: " 1.2.3 ", want: "1.2.3"},
		{version: "", want: "dev"},
	}

	for _, tt := range tests {
		handler := newTestHandler(t, Options{Version: tt.version})
		rr := doRequest(handler, http.MethodGet, "/api/version", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var resp map[string]string
		decodeBody(t, rr, &resp)
		if resp["version"] != tt.want {
			t.Errorf("expected version %q, got %q", tt.want, resp["version"])
		}
	}
}
