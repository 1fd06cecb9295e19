package catalog

import (
	"strings"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
)

// Integration categories.
const (
	CategoryCRM           = "CRM"
	CategoryCommunication = "COMMUNICATION"
	CategorySales         = "SALES"
	CategoryAnalytics     = "ANALYTICS"
)

var categoryOrder = []string{CategoryCRM, CategoryCommunication, CategorySales, CategoryAnalytics}

var categoryLabels = map[string]string{
	CategoryCRM:           "CRM Systems",
	CategoryCommunication: "Communication Tools",
	CategorySales:         "Sales Enablement",
	CategoryAnalytics:     "Analytics",
}

// Integration is a third-party product the platform connects to.
type Integration struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Logo        string `yaml:"logo" json:"logo"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description" json:"description"`
	UseCase     string `yaml:"useCase" json:"useCase"`
}

// IntegrationGroup is one category's share of a search result.
type IntegrationGroup struct {
	Category     string        `json:"category"`
	Label        string        `json:"label"`
	Integrations []Integration `json:"integrations"`
}

// CategoryLabel returns the display label for a category, or the category itself.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// SearchIntegrations matches term case-insensitively against name and
// description, restricted to category unless it is empty or "all". The term
// is used as typed, surrounding whitespace included.
func (c *Catalog) SearchIntegrations(term, category string) []Integration {
	needle := strings.ToLower(term)
	anyCategory := category == "" || category == constants.FilterAll

	matches := make([]Integration, 0, len(c.Integrations))
	for _, integration := range c.Integrations {
		if !anyCategory && integration.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(integration.Name), needle) &&
			!strings.Contains(strings.ToLower(integration.Description), needle) {
			continue
		}
		matches = append(matches, integration)
	}
	return matches
}

// GroupByCategory buckets integrations by category in display order. Unknown
// categories follow the known ones in first-seen order; empty groups are dropped.
func GroupByCategory(integrations []Integration) []IntegrationGroup {
	buckets := make(map[string][]Integration)
	var extra []string
	for _, integration := range integrations {
		if _, known := categoryLabels[integration.Category]; !known {
			if _, seen := buckets[integration.Category]; !seen {
				extra = append(extra, integration.Category)
			}
		}
		buckets[integration.Category] = append(buckets[integration.Category], integration)
	}

	var groups []IntegrationGroup
	for _, category := range append(append([]string(nil), categoryOrder...), extra...) {
		members, ok := buckets[category]
		if !ok {
			continue
		}
		groups = append(groups, IntegrationGroup{
			Category:     category,
			Label:        CategoryLabel(category),
			Integrations: members,
		})
	}
	return groups
}
