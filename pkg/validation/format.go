// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"regexp"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateOutputFormat checks if the output format is one of the CLI's supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatMarkdown:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatMarkdown, format)
}

// ValidateReportFormat checks if the format is one the report endpoint can render.
func ValidateReportFormat(format string) error {
	switch format {
	case constants.OutputFormatMarkdown, constants.OutputFormatHTML, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("expected report format of %s, %s or %s, got %s",
		constants.OutputFormatMarkdown, constants.OutputFormatHTML, constants.OutputFormatCSV, format)
}

// ValidateBillingCycle checks if the billing cycle is monthly or annual.
func ValidateBillingCycle(cycle string) error {
	if cycle != constants.BillingMonthly && cycle != constants.BillingAnnual {
		return fmt.Errorf("expected billing cycle of %s or %s, got %s",
			constants.BillingMonthly, constants.BillingAnnual, cycle)
	}
	return nil
}

// ValidateDetailLevel checks if the model comparison detail level is business or technical.
func ValidateDetailLevel(detail string) error {
	if detail != constants.DetailBusiness && detail != constants.DetailTechnical {
		return fmt.Errorf("expected detail level of %s or %s, got %s",
			constants.DetailBusiness, constants.DetailTechnical, detail)
	}
	return nil
}

// ValidateEmail performs the same loose address check the report form uses.
func ValidateEmail(address string) error {
	if !emailPattern.MatchString(address) {
		return fmt.Errorf("%w: invalid email address %q", ErrInvalidInput, address)
	}
	return nil
}
