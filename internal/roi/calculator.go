// Package roi computes projected sales performance and revenue for a team
// adopting the product under a chosen confidence scenario.
//
// Calculate is a pure function: it holds no state between calls and is safe
// for concurrent use.
package roi

import (
	"fmt"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/mathutil"
	"github.com/iwvelando/sales-roi-forecast/pkg/validation"
)

// ErrInvalidInput is returned by CalculateChecked for metrics outside their bounds.
var ErrInvalidInput = validation.ErrInvalidInput

// SalesMetrics describes a sales team's current performance.
type SalesMetrics struct {
	TeamSize         int     `json:"teamSize" yaml:"teamSize"`
	AvgDealSize      float64 `json:"avgDealSize" yaml:"avgDealSize"`
	CurrentCloseRate float64 `json:"currentCloseRate" yaml:"currentCloseRate"` // percentage points, (0, 100]
	SalesCycleLength int     `json:"salesCycleLength" yaml:"salesCycleLength"` // days
	LeadsPerMonth    int     `json:"leadsPerMonth" yaml:"leadsPerMonth"`
}

// ProjectionResult holds the derived forecast for one set of metrics.
type ProjectionResult struct {
	ImprovedCloseRate       float64 `json:"improvedCloseRate"`
	ReducedSalesCycleLength int     `json:"reducedSalesCycleLength"`
	AdditionalDealsPerMonth float64 `json:"additionalDealsPerMonth"`
	CurrentMonthlyRevenue   float64 `json:"currentMonthlyRevenue"`
	ProjectedMonthlyRevenue float64 `json:"projectedMonthlyRevenue"`
	MonthlyRevenueIncrease  float64 `json:"monthlyRevenueIncrease"`
	AnnualRevenueIncrease   float64 `json:"annualRevenueIncrease"`
	ROIPercentage           float64 `json:"roiPercentage"`
}

// Projection bundles a result with the inputs that produced it.
type Projection struct {
	Scenario     Scenario         `json:"scenario"`
	Coefficients Coefficients     `json:"coefficients"`
	Metrics      SalesMetrics     `json:"metrics"`
	Result       ProjectionResult `json:"result"`
}

// Validate checks m against the calculator's preconditions.
func (m SalesMetrics) Validate() error {
	return validation.ValidateMetrics(validation.MetricsInput{
		TeamSize:         m.TeamSize,
		AvgDealSize:      m.AvgDealSize,
		CurrentCloseRate: m.CurrentCloseRate,
		SalesCycleLength: m.SalesCycleLength,
		LeadsPerMonth:    m.LeadsPerMonth,
	})
}

// AnnualCost is the yearly subscription cost for the whole team.
func (m SalesMetrics) AnnualCost() float64 {
	return float64(m.TeamSize) * constants.SeatCostPerMonth * constants.MonthsPerYear
}

// Calculate projects metrics under scenario. Metrics are assumed valid; a
// zero team size yields an infinite or NaN ROI rather than an error.
func Calculate(metrics SalesMetrics, scenario Scenario) ProjectionResult {
	c := CoefficientsFor(scenario)

	improvedCloseRate := mathutil.Min(metrics.CurrentCloseRate*(1+c.CloseRateImprovement), constants.MaxCloseRate)
	reducedSalesCycleLength := max(
		mathutil.RoundToInt(float64(metrics.SalesCycleLength)*(1-c.SalesCycleReduction)),
		constants.MinSalesCycleDays,
	)

	leads := float64(metrics.LeadsPerMonth)
	currentDealsPerMonth := leads * (metrics.CurrentCloseRate / constants.PercentageMultiplier)
	projectedDealsPerMonth := leads * (improvedCloseRate / constants.PercentageMultiplier)

	currentMonthlyRevenue := currentDealsPerMonth * metrics.AvgDealSize
	projectedMonthlyRevenue := projectedDealsPerMonth * metrics.AvgDealSize
	monthlyRevenueIncrease := projectedMonthlyRevenue - currentMonthlyRevenue
	annualRevenueIncrease := monthlyRevenueIncrease * constants.MonthsPerYear

	return ProjectionResult{
		ImprovedCloseRate:       improvedCloseRate,
		ReducedSalesCycleLength: reducedSalesCycleLength,
		AdditionalDealsPerMonth: projectedDealsPerMonth - currentDealsPerMonth,
		CurrentMonthlyRevenue:   currentMonthlyRevenue,
		ProjectedMonthlyRevenue: projectedMonthlyRevenue,
		MonthlyRevenueIncrease:  monthlyRevenueIncrease,
		AnnualRevenueIncrease:   annualRevenueIncrease,
		ROIPercentage:           (annualRevenueIncrease / metrics.AnnualCost()) * constants.PercentageMultiplier,
	}
}

// CalculateChecked validates metrics before calculating. The returned error
// matches ErrInvalidInput under errors.Is.
func CalculateChecked(metrics SalesMetrics, scenario Scenario) (ProjectionResult, error) {
	if err := metrics.Validate(); err != nil {
		return ProjectionResult{}, fmt.Errorf("calculate %s projection: %w", scenario, err)
	}
	return Calculate(metrics, scenario), nil
}

// Project runs Calculate and keeps the inputs alongside the result.
func Project(metrics SalesMetrics, scenario Scenario) Projection {
	return Projection{
		Scenario:     scenario,
		Coefficients: CoefficientsFor(scenario),
		Metrics:      metrics,
		Result:       Calculate(metrics, scenario),
	}
}

// CompareScenarios projects metrics under every known scenario, least
// optimistic first.
func CompareScenarios(metrics SalesMetrics) []Projection {
	scenarios := Scenarios()
	projections := make([]Projection, 0, len(scenarios))
	for _, s := range scenarios {
		projections = append(projections, Project(metrics, s))
	}
	return projections
}
