// Package report renders ROI projections for people: a styled terminal table,
// CSV for spreadsheets, and a Markdown document that can also be served as HTML.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"github.com/iwvelando/sales-roi-forecast/pkg/format"
)

// Title heads every rendered report.
const Title = "SalesWhisper ROI Report"

// Report is a set of projections rendered together.
type Report struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Projections []roi.Projection `json:"projections"`
}

// Line is one labelled, display-formatted value.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// New wraps projections in a report with a fresh ID.
func New(projections ...roi.Projection) Report {
	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Projections: projections,
	}
}

// InputLines formats the metrics a projection was computed from.
func InputLines(m roi.SalesMetrics) []Line {
	return []Line{
		{Label: "Sales Team Size", Value: fmt.Sprintf("%d people", m.TeamSize)},
		{Label: "Average Deal Size", Value: format.Currency(m.AvgDealSize)},
		{Label: "Current Close Rate", Value: format.Percentage(m.CurrentCloseRate)},
		{Label: "Sales Cycle Length", Value: fmt.Sprintf("%d days", m.SalesCycleLength)},
		{Label: "Leads Per Month", Value: fmt.Sprintf("%d", m.LeadsPerMonth)},
	}
}

// ResultLines formats a projection result.
func ResultLines(r roi.ProjectionResult) []Line {
	return []Line{
		{Label: "Total Annual Revenue Increase", Value: format.Currency(r.AnnualRevenueIncrease)},
		{Label: "Monthly Revenue Increase", Value: format.Currency(r.MonthlyRevenueIncrease)},
		{Label: "Current Monthly Revenue", Value: format.Currency(r.CurrentMonthlyRevenue)},
		{Label: "Projected Monthly Revenue", Value: format.Currency(r.ProjectedMonthlyRevenue)},
		{Label: "Improved Close Rate", Value: format.Percentage(r.ImprovedCloseRate)},
		{Label: "Reduced Sales Cycle", Value: fmt.Sprintf("%d days", r.ReducedSalesCycleLength)},
		{Label: "ROI Percentage", Value: format.Percentage(r.ROIPercentage)},
		{Label: "Additional Deals Per Month", Value: format.Decimal(r.AdditionalDealsPerMonth, 1)},
	}
}

// Formatted is the display form of a projection result, keyed like the JSON fields.
type Formatted struct {
	ImprovedCloseRate       string `json:"improvedCloseRate"`
	ReducedSalesCycleLength string `json:"reducedSalesCycleLength"`
	AdditionalDealsPerMonth string `json:"additionalDealsPerMonth"`
	CurrentMonthlyRevenue   string `json:"currentMonthlyRevenue"`
	ProjectedMonthlyRevenue string `json:"projectedMonthlyRevenue"`
	MonthlyRevenueIncrease  string `json:"monthlyRevenueIncrease"`
	AnnualRevenueIncrease   string `json:"annualRevenueIncrease"`
	ROIPercentage           string `json:"roiPercentage"`
}

// FormatResult renders every result field for display.
func FormatResult(r roi.ProjectionResult) Formatted {
	return Formatted{
		ImprovedCloseRate:       format.Percentage(r.ImprovedCloseRate),
		ReducedSalesCycleLength: fmt.Sprintf("%d days", r.ReducedSalesCycleLength),
		AdditionalDealsPerMonth: format.Decimal(r.AdditionalDealsPerMonth, 1),
		CurrentMonthlyRevenue:   format.Currency(r.CurrentMonthlyRevenue),
		ProjectedMonthlyRevenue: format.Currency(r.ProjectedMonthlyRevenue),
		MonthlyRevenueIncrease:  format.Currency(r.MonthlyRevenueIncrease),
		AnnualRevenueIncrease:   format.Currency(r.AnnualRevenueIncrease),
		ROIPercentage:           format.Percentage(r.ROIPercentage),
	}
}
