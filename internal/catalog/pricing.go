package catalog

import (
	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/mathutil"
)

// PricingPlan is a subscription tier. Nil prices mean custom pricing.
type PricingPlan struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	MonthlyPrice *float64 `yaml:"monthlyPrice" json:"monthlyPrice"`
	AnnualPrice  *float64 `yaml:"annualPrice" json:"annualPrice"`
	Features     []string `yaml:"features" json:"features"`
	CTAText      string   `yaml:"ctaText" json:"ctaText"`
	CTALink      string   `yaml:"ctaLink" json:"ctaLink"`
	Recommended  bool     `yaml:"recommended" json:"recommended"`
}

// CustomPricing reports whether the plan has no list price.
func (p PricingPlan) CustomPricing() bool {
	return p.MonthlyPrice == nil
}

// PriceFor returns the per-month price for a billing cycle. Annual falls back
// to monthly when no annual price is set; ok is false for custom pricing.
func (p PricingPlan) PriceFor(cycle string) (price float64, ok bool) {
	if p.MonthlyPrice == nil {
		return 0, false
	}
	if cycle == constants.BillingAnnual && p.AnnualPrice != nil {
		return *p.AnnualPrice, true
	}
	return *p.MonthlyPrice, true
}

// AnnualSavingsPercent is the discount for annual billing, in percentage points.
func (p PricingPlan) AnnualSavingsPercent() (float64, bool) {
	if p.MonthlyPrice == nil || p.AnnualPrice == nil || *p.MonthlyPrice <= 0 {
		return 0, false
	}
	return mathutil.CalculatePercentage(*p.MonthlyPrice-*p.AnnualPrice, *p.MonthlyPrice), true
}

// MaxAnnualSavingsPercent is the best annual discount across all priced plans.
func (c *Catalog) MaxAnnualSavingsPercent() float64 {
	var best float64
	for _, plan := range c.Pricing {
		if savings, ok := plan.AnnualSavingsPercent(); ok && savings > best {
			best = savings
		}
	}
	return best
}

// Recommended returns the first plan flagged as recommended.
func (c *Catalog) Recommended() (PricingPlan, bool) {
	for _, plan := range c.Pricing {
		if plan.Recommended {
			return plan, true
		}
	}
	return PricingPlan{}, false
}
