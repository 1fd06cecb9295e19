// Package format renders projection values as US-locale display strings.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/sales-roi-forecast/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printers are built per call; message.Printer carries formatting state.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// Currency returns a whole-dollar currency string with thousands separators
// (e.g., "$12,346", "-$1,234"). Fractions round half away from zero.
//
// Rounding happens before the sign is chosen, so amounts that round to zero
// (e.g., -0.4) render as "$0" rather than "-$0".
func Currency(amount float64) string {
	rounded := math.Round(amount)
	if rounded == 0 {
		// -0 prints without a sign
		rounded = 0
	}
	if rounded < 0 {
		return "-$" + newPrinter().Sprintf("%.0f", -rounded)
	}
	return "$" + newPrinter().Sprintf("%.0f", rounded)
}

// Percentage renders a value expressed in percentage points with exactly one
// fraction digit, e.g. 42.5 -> "42.5%" and 2500 -> "2,500.0%".
// The digit comes from the stored binary value, so 1.45 (1.4499...) gives "1.4%".
func Percentage(value float64) string {
	return newPrinter().Sprintf("%.1f", value) + "%"
}

// Decimal renders a grouped number with a fixed count of fraction digits.
func Decimal(value float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	layout := fmt.Sprintf("%%.%df", digits)
	return newPrinter().Sprintf(layout, mathutil.RoundTo(value, digits))
}
