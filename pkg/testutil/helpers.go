// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
)

// DefaultMetrics returns the calculator form's initial values.
func DefaultMetrics() roi.SalesMetrics {
	return roi.SalesMetrics{
		TeamSize:         constants.DefaultTeamSize,
		AvgDealSize:      constants.DefaultAvgDealSize,
		CurrentCloseRate: constants.DefaultCurrentCloseRate,
		SalesCycleLength: constants.DefaultSalesCycleLength,
		LeadsPerMonth:    constants.DefaultLeadsPerMonth,
	}
}

// FindProjection finds a projection by scenario in the projections slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindProjection(projections []roi.Projection, scenario roi.Scenario) *roi.Projection {
	for i := range projections {
		if projections[i].Scenario == scenario {
			return &projections[i]
		}
	}
	return nil
}

// MetricsGrid expands every combination of the given values into metrics,
// keeping the team size and deal size fixed.
func MetricsGrid(teamSize int, avgDealSize float64, closeRates []float64, cycles, leads []int) []roi.SalesMetrics {
	grid := make([]roi.SalesMetrics, 0, len(closeRates)*len(cycles)*len(leads))
	for _, rate := range closeRates {
		for _, cycle := range cycles {
			for _, l := range leads {
				grid = append(grid, roi.SalesMetrics{
					TeamSize:         teamSize,
					AvgDealSize:      avgDealSize,
					CurrentCloseRate: rate,
					SalesCycleLength: cycle,
					LeadsPerMonth:    l,
				})
			}
		}
	}
	return grid
}
