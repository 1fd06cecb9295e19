// Package catalog holds the static marketing data served next to the ROI
// calculator (pricing plans, integrations, customer case studies and the
// language model comparison) together
// with the filters used to browse it. A Catalog is read-only once loaded.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the complete set of static marketing data.
type Catalog struct {
	Pricing      []PricingPlan `yaml:"pricing"`
	Integrations []Integration `yaml:"integrations"`
	CaseStudies  []CaseStudy   `yaml:"caseStudies"`

	Models           []Model             `yaml:"models"`
	ModelPerformance []PerformanceMetric `yaml:"modelPerformance"`
	ModelTimeline    []TimelineEvent     `yaml:"modelTimeline"`
	ModelOutputs     *OutputComparison   `yaml:"modelOutputs"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Empty reports whether the catalog carries no data at all.
func (c *Catalog) Empty() bool {
	return c == nil || (len(c.Pricing) == 0 && len(c.Integrations) == 0 &&
		len(c.CaseStudies) == 0 && len(c.Models) == 0)
}

// Validate returns warnings for entries that load but look wrong.
func (c *Catalog) Validate() []string {
	var warnings []string

	seen := make(map[string]struct{})
	for _, integration := range c.Integrations {
		if _, dup := seen[integration.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("Integration '%s' is listed more than once", integration.ID))
		}
		seen[integration.ID] = struct{}{}
		if _, ok := categoryLabels[integration.Category]; !ok {
			warnings = append(warnings, fmt.Sprintf("Integration '%s' has unknown category '%s'", integration.ID, integration.Category))
		}
	}

	seen = make(map[string]struct{})
	for _, study := range c.CaseStudies {
		if _, dup := seen[study.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("Case study '%s' is listed more than once", study.ID))
		}
		seen[study.ID] = struct{}{}
		if _, ok := companySizeLabels[study.CompanySize]; !ok {
			warnings = append(warnings, fmt.Sprintf("Case study '%s' has unknown company size '%s'", study.ID, study.CompanySize))
		}
	}

	for _, plan := range c.Pricing {
		if (plan.MonthlyPrice == nil) != (plan.AnnualPrice == nil) {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' sets only one of monthlyPrice and annualPrice", plan.Name))
			continue
		}
		if plan.MonthlyPrice != nil && *plan.AnnualPrice > *plan.MonthlyPrice {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' costs more billed annually than monthly", plan.Name))
		}
	}

	modelIDs := make(map[int]struct{})
	for _, model := range c.Models {
		if _, dup := modelIDs[model.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("Model %d is listed more than once", model.ID))
		}
		modelIDs[model.ID] = struct{}{}
	}

	for _, metric := range c.ModelPerformance {
		for model, score := range metric.Scores {
			if score < 0 || score > 100 {
				warnings = append(warnings, fmt.Sprintf("Performance metric '%s' scores '%s' at %d, outside 0-100", metric.Metric, model, score))
			}
		}
	}

	for i := 1; i < len(c.ModelTimeline); i++ {
		if c.ModelTimeline[i].Year < c.ModelTimeline[i-1].Year {
			warnings = append(warnings, fmt.Sprintf("Timeline event '%s' is out of chronological order", c.ModelTimeline[i].Title))
		}
	}

	return warnings
}
