// Package constants provides shared constants for the sales-roi-forecast application.
package constants

// Business constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// SeatCostPerMonth is the assumed subscription cost per sales seat per month.
	SeatCostPerMonth = 100.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxCloseRate is the ceiling for any close rate, in percentage points.
	MaxCloseRate = 100.0

	// MinSalesCycleDays is the floor for a projected sales cycle.
	MinSalesCycleDays = 1
)

// Scenario name constants
const (
	// ScenarioConservative is the lowest-confidence projection.
	ScenarioConservative = "conservative"

	// ScenarioAverage is the default projection and the fallback for unknown names.
	ScenarioAverage = "average"

	// ScenarioOptimistic is the highest-confidence projection.
	ScenarioOptimistic = "optimistic"
)

// Default sales metrics, mirroring the calculator form's initial values.
const (
	DefaultTeamSize         = 10
	DefaultAvgDealSize      = 5000.0
	DefaultCurrentCloseRate = 20.0
	DefaultSalesCycleLength = 30
	DefaultLeadsPerMonth    = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatMarkdown is the Markdown report format
	OutputFormatMarkdown = "markdown"

	// OutputFormatHTML is the HTML report format, only offered by the API
	OutputFormatHTML = "html"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. ROI_LOGGING_LEVEL.
	EnvPrefix = "ROI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRateLimitPerMinute is the default number of requests per client per minute
	DefaultRateLimitPerMinute = 60

	// DefaultRateLimitBurst is the default burst size per client
	DefaultRateLimitBurst = 10
)

// Catalog constants
const (
	// FilterAll disables a catalog filter.
	FilterAll = "all"

	// BillingMonthly selects month-to-month pricing.
	BillingMonthly = "monthly"

	// BillingAnnual selects annual pricing billed per month.
	BillingAnnual = "annual"

	// DefaultCaseStudyPageSize matches the number of stories revealed per "load more".
	DefaultCaseStudyPageSize = 3

	// DetailBusiness selects the plain-language model comparison columns.
	DetailBusiness = "business"

	// DetailTechnical selects the architecture-level model comparison columns.
	DetailTechnical = "technical"
)
