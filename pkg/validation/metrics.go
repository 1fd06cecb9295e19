package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/mathutil"
)

// ErrInvalidInput marks input that violates the calculator's preconditions.
var ErrInvalidInput = errors.New("invalid input")

// MetricsInput carries the raw sales metrics to check.
type MetricsInput struct {
	TeamSize         int
	AvgDealSize      float64
	CurrentCloseRate float64
	SalesCycleLength int
	LeadsPerMonth    int
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every rejected field. It matches ErrInvalidInput under errors.Is.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Is lets callers test against ErrInvalidInput.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateMetrics checks every field against its bounds and reports all
// violations at once. It returns nil for valid input.
func ValidateMetrics(in MetricsInput) error {
	var errs FieldErrors

	if in.TeamSize <= 0 {
		errs = append(errs, FieldError{Field: "teamSize", Message: "must be positive"})
	}

	switch {
	case !mathutil.IsFinite(in.AvgDealSize):
		errs = append(errs, FieldError{Field: "avgDealSize", Message: "must be a finite number"})
	case in.AvgDealSize <= 0:
		errs = append(errs, FieldError{Field: "avgDealSize", Message: "must be positive"})
	}

	switch {
	case !mathutil.IsFinite(in.CurrentCloseRate):
		errs = append(errs, FieldError{Field: "currentCloseRate", Message: "must be a finite number"})
	case in.CurrentCloseRate <= 0:
		errs = append(errs, FieldError{Field: "currentCloseRate", Message: "must be positive"})
	case in.CurrentCloseRate > constants.MaxCloseRate:
		errs = append(errs, FieldError{Field: "currentCloseRate", Message: "cannot exceed 100%"})
	}

	if in.SalesCycleLength <= 0 {
		errs = append(errs, FieldError{Field: "salesCycleLength", Message: "must be positive"})
	}

	if in.LeadsPerMonth <= 0 {
		errs = append(errs, FieldError{Field: "leadsPerMonth", Message: "must be positive"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
