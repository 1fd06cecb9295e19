package roi

import (
	"strings"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
)

// Scenario selects how confident a projection is.
type Scenario string

// Known scenarios.
const (
	Conservative Scenario = constants.ScenarioConservative
	Average      Scenario = constants.ScenarioAverage
	Optimistic   Scenario = constants.ScenarioOptimistic
)

// Coefficients are the improvement factors applied for a scenario.
type Coefficients struct {
	CloseRateImprovement float64 `json:"closeRateImprovementFactor"`
	SalesCycleReduction  float64 `json:"salesCycleReductionFactor"`
}

// Scenarios lists the known scenarios from least to most optimistic.
func Scenarios() []Scenario {
	return []Scenario{Conservative, Average, Optimistic}
}

// Known reports whether s is one of the three recognized scenario names.
// Matching is exact.
func (s Scenario) Known() bool {
	switch s {
	case Conservative, Average, Optimistic:
		return true
	}
	return false
}

// CoefficientsFor returns the factors for s. Unrecognized scenarios use the
// average factors.
func CoefficientsFor(s Scenario) Coefficients {
	switch s {
	case Conservative:
		return Coefficients{CloseRateImprovement: 0.15, SalesCycleReduction: 0.12}
	case Average:
		return Coefficients{CloseRateImprovement: 0.25, SalesCycleReduction: 0.20}
	case Optimistic:
		return Coefficients{CloseRateImprovement: 0.35, SalesCycleReduction: 0.30}
	default:
		return Coefficients{CloseRateImprovement: 0.25, SalesCycleReduction: 0.20}
	}
}

// ParseScenario normalizes user input (case and surrounding whitespace) and
// reports whether it named a known scenario. Unknown names resolve to Average.
func ParseScenario(name string) (Scenario, bool) {
	s := Scenario(strings.ToLower(strings.TrimSpace(name)))
	if s.Known() {
		return s, true
	}
	return Average, false
}
