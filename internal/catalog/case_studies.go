package catalog

import "github.com/iwvelando/sales-roi-forecast/pkg/constants"

// Company sizes.
const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeEnterprise = "enterprise"
)

var companySizeLabels = map[string]string{
	SizeSmall:      "Small Business",
	SizeMedium:     "Mid-Market",
	SizeLarge:      "Large Enterprise",
	SizeEnterprise: "Global Enterprise",
}

// CaseStudy is a customer success story.
type CaseStudy struct {
	ID               string        `yaml:"id" json:"id"`
	CompanyName      string        `yaml:"companyName" json:"companyName"`
	Industry         string        `yaml:"industry" json:"industry"`
	CompanySize      string        `yaml:"companySize" json:"companySize"`
	Logo             string        `yaml:"logo" json:"logo"`
	Quote            string        `yaml:"quote" json:"quote"`
	PersonName       string        `yaml:"personName" json:"personName"`
	PersonRole       string        `yaml:"personRole" json:"personRole"`
	Metrics          []StudyMetric `yaml:"metrics" json:"metrics"`
	HasVideo         bool          `yaml:"hasVideo" json:"hasVideo"`
	VideoID          string        `yaml:"videoId" json:"videoId,omitempty"`
	FullCaseStudyURL string        `yaml:"fullCaseStudyUrl" json:"fullCaseStudyUrl,omitempty"`
}

// StudyMetric is a before/after measurement quoted in a case study.
type StudyMetric struct {
	Label  string  `yaml:"label" json:"label"`
	Before float64 `yaml:"before" json:"before"`
	After  float64 `yaml:"after" json:"after"`
	Unit   string  `yaml:"unit" json:"unit"`
}

// CompanySizeLabel returns the display label for a company size.
func CompanySizeLabel(size string) string {
	if label, ok := companySizeLabels[size]; ok {
		return label
	}
	return size
}

// Industries lists the distinct industries in catalog order.
func (c *Catalog) Industries() []string {
	seen := make(map[string]struct{})
	var industries []string
	for _, study := range c.CaseStudies {
		if _, ok := seen[study.Industry]; ok {
			continue
		}
		seen[study.Industry] = struct{}{}
		industries = append(industries, study.Industry)
	}
	return industries
}

// FilterCaseStudies applies a single filter value: "all" (or empty) keeps
// everything, an industry name keeps that industry, and any other value is
// compared against company size.
func (c *Catalog) FilterCaseStudies(filter string) []CaseStudy {
	if filter == "" || filter == constants.FilterAll {
		return append([]CaseStudy(nil), c.CaseStudies...)
	}

	isIndustry := false
	for _, industry := range c.Industries() {
		if industry == filter {
			isIndustry = true
			break
		}
	}

	var matches []CaseStudy
	for _, study := range c.CaseStudies {
		if isIndustry {
			if study.Industry == filter {
				matches = append(matches, study)
			}
			continue
		}
		if study.CompanySize == filter {
			matches = append(matches, study)
		}
	}
	return matches
}
