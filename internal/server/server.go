// Package server exposes the ROI calculator, report generator and marketing
// catalog over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/sales-roi-forecast/internal/catalog"
	"github.com/iwvelando/sales-roi-forecast/internal/config"
	"github.com/iwvelando/sales-roi-forecast/internal/report"
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Options carries the handler's dependencies.
type Options struct {
	Catalog       *catalog.Catalog
	Defaults      config.Defaults
	MaxUploadSize int64
	RateLimit     RateLimitConfig
	Version       string
}

type handler struct {
	logger          *zap.Logger
	catalog         *catalog.Catalog
	defaultScenario roi.Scenario
	maxUploadSize   int64
	version         string
	limiter         *rateLimiter
}

// NewHandler constructs the HTTP handler that serves the ROI and catalog API.
func NewHandler(logger *zap.Logger, opts Options) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			return nil, err
		}
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	defaultScenario, _ := roi.ParseScenario(opts.Defaults.Scenario)

	h := &handler{
		logger:          logger,
		catalog:         cat,
		defaultScenario: defaultScenario,
		maxUploadSize:   maxUploadSize,
		version:         trimmedVersion,
		limiter:         newRateLimiter(opts.RateLimit),
	}

	mux := http.NewServeMux()

	// Calculator endpoints
	mux.Handle("/api/roi", h.rateLimit(http.HandlerFunc(h.handleCalculate)))
	mux.Handle("/api/roi/compare", h.rateLimit(http.HandlerFunc(h.handleCompare)))
	mux.Handle("/api/roi/report", h.rateLimit(http.HandlerFunc(h.handleReport)))
	mux.HandleFunc("/api/scenarios", h.handleScenarios)

	// Catalog endpoints
	mux.HandleFunc("/api/pricing", h.handlePricing)
	mux.HandleFunc("/api/integrations", h.handleIntegrations)
	mux.HandleFunc("/api/models", h.handleModels)
	mux.HandleFunc("/api/case-studies", h.handleCaseStudies)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux, nil
}

type roiRequest struct {
	Metrics  *roi.SalesMetrics `json:"metrics"`
	Scenario string            `json:"scenario"`
	Format   string            `json:"format"`
	Email    string            `json:"email"`
}

type projectionResponse struct {
	Scenario           roi.Scenario         `json:"scenario"`
	RequestedScenario  string               `json:"requestedScenario,omitempty"`
	ScenarioRecognized bool                 `json:"scenarioRecognized"`
	Coefficients       roi.Coefficients     `json:"coefficients"`
	Metrics            roi.SalesMetrics     `json:"metrics"`
	Result             roi.ProjectionResult `json:"result"`
	Formatted          report.Formatted     `json:"formatted"`
	Duration           string               `json:"duration,omitempty"`
}

type compareResponse struct {
	Projections []projectionResponse `json:"projections"`
	Duration    string               `json:"duration"`
}

type reportResponse struct {
	ID        string `json:"id"`
	Format    string `json:"format"`
	Content   string `json:"content"`
	Recipient string `json:"recipient,omitempty"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	scenario, recognized := h.resolveScenario(req.Scenario)
	result, err := roi.CalculateChecked(*req.Metrics, scenario)
	if err != nil {
		h.respondInvalid(w, err, op)
		return
	}

	elapsed := time.Since(start)
	resp := projectionResponse{
		Scenario:           scenario,
		RequestedScenario:  req.Scenario,
		ScenarioRecognized: recognized,
		Coefficients:       roi.CoefficientsFor(scenario),
		Metrics:            *req.Metrics,
		Result:             result,
		Formatted:          report.FormatResult(result),
		Duration:           elapsed.String(),
	}

	h.logger.Debug("projection computed",
		zap.String("op", op),
		zap.String("scenario", string(scenario)),
		zap.Bool("scenarioRecognized", recognized),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}
	if err := req.Metrics.Validate(); err != nil {
		h.respondInvalid(w, err, op)
		return
	}

	projections := roi.CompareScenarios(*req.Metrics)
	resp := compareResponse{Projections: make([]projectionResponse, 0, len(projections))}
	for _, p := range projections {
		resp.Projections = append(resp.Projections, projectionResponse{
			Scenario:           p.Scenario,
			ScenarioRecognized: true,
			Coefficients:       p.Coefficients,
			Metrics:            p.Metrics,
			Result:             p.Result,
			Formatted:          report.FormatResult(p.Result),
		})
	}
	resp.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = constants.OutputFormatMarkdown
	}
	if err := validation.ValidateReportFormat(format); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, "Please enter a valid email address.", op)
			return
		}
	}

	scenario, _ := h.resolveScenario(req.Scenario)
	if err := req.Metrics.Validate(); err != nil {
		h.respondInvalid(w, err, op)
		return
	}

	rep := report.New(roi.Project(*req.Metrics, scenario))

	var content string
	var err error
	switch format {
	case constants.OutputFormatMarkdown:
		content = report.Markdown(rep)
	case constants.OutputFormatHTML:
		content, err = report.HTML(rep)
	case constants.OutputFormatCSV:
		content, err = report.CsvString(rep)
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}

	h.logger.Info("report generated",
		zap.String("op", op),
		zap.String("reportId", rep.ID),
		zap.String("format", format),
		zap.String("scenario", string(scenario)),
		zap.Bool("emailRequested", email != ""),
	)

	h.writeJSON(w, http.StatusOK, reportResponse{
		ID:        rep.ID,
		Format:    format,
		Content:   content,
		Recipient: email,
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	type scenarioInfo struct {
		Name         roi.Scenario     `json:"name"`
		Coefficients roi.Coefficients `json:"coefficients"`
	}

	scenarios := roi.Scenarios()
	infos := make([]scenarioInfo, 0, len(scenarios))
	for _, s := range scenarios {
		infos = append(infos, scenarioInfo{Name: s, Coefficients: roi.CoefficientsFor(s)})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"default":   h.defaultScenario,
		"scenarios": infos,
	})
}

type pricedPlan struct {
	catalog.PricingPlan
	Price          *float64 `json:"price"`
	SavingsPercent *float64 `json:"annualSavingsPercent,omitempty"`
}

func (h *handler) handlePricing(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePricing"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	billing := r.URL.Query().Get("billing")
	if billing == "" {
		billing = constants.BillingMonthly
	}
	if err := validation.ValidateBillingCycle(billing); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	plans := make([]pricedPlan, 0, len(h.catalog.Pricing))
	for _, plan := range h.catalog.Pricing {
		priced := pricedPlan{PricingPlan: plan}
		if price, ok := plan.PriceFor(billing); ok {
			priced.Price = &price
		}
		if savings, ok := plan.AnnualSavingsPercent(); ok {
			priced.SavingsPercent = &savings
		}
		plans = append(plans, priced)
	}

	resp := map[string]interface{}{
		"billing":                 billing,
		"maxAnnualSavingsPercent": h.catalog.MaxAnnualSavingsPercent(),
		"plans":                   plans,
	}
	if recommended, ok := h.catalog.Recommended(); ok {
		resp["recommended"] = recommended.Name
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleIntegrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	matches := h.catalog.SearchIntegrations(query.Get("q"), query.Get("category"))

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":  len(matches),
		"groups": catalog.GroupByCategory(matches),
	})
}

func (h *handler) handleModels(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleModels"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	table, err := h.catalog.ModelTable(r.URL.Query().Get("detail"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"table":       table,
		"performance": h.catalog.ModelPerformance,
		"timeline":    h.catalog.ModelTimeline,
		"outputs":     h.catalog.ModelOutputs,
	})
}

type caseStudyView struct {
	catalog.CaseStudy
	CompanySizeLabel string `json:"companySizeLabel"`
}

func (h *handler) handleCaseStudies(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCaseStudies"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	filter := query.Get("filter")
	if filter == "" {
		filter = constants.FilterAll
	}

	limit := constants.DefaultCaseStudyPageSize
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q: expected a positive integer", raw), op)
			return
		}
		limit = parsed
	}

	matches := h.catalog.FilterCaseStudies(filter)
	total := len(matches)
	if limit < total {
		matches = matches[:limit]
	}
	studies := make([]caseStudyView, 0, len(matches))
	for _, study := range matches {
		studies = append(studies, caseStudyView{
			CaseStudy:        study,
			CompanySizeLabel: catalog.CompanySizeLabel(study.CompanySize),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"filter":     filter,
		"total":      total,
		"hasMore":    limit < total,
		"industries": h.catalog.Industries(),
		"studies":    studies,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeRequest reads a size-limited JSON body. It writes the error response
// itself and reports false when the request cannot be used.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (roiRequest, bool) {
	var req roiRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return req, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}
	if req.Metrics == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing metrics", op)
		return req, false
	}
	return req, true
}

// resolveScenario maps a request's scenario name onto the table. Empty input
// takes the configured default; unknown names fall back to average.
func (h *handler) resolveScenario(name string) (roi.Scenario, bool) {
	if strings.TrimSpace(name) == "" {
		return h.defaultScenario, true
	}
	return roi.ParseScenario(name)
}

func (h *handler) respondInvalid(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	if errors.Is(err, validation.ErrInvalidInput) {
		status = http.StatusBadRequest
	}

	resp := errorResponse{Error: err.Error()}
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		resp.Fields = fieldErrs
	}

	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.writeJSON(w, status, resp)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
