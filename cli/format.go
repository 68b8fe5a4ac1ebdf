// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount rounded to whole units with thousands
// separators. e.g., 171600000 -> "$171,600,000"
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatRate formats an annual rate as a percentage. e.g., 0.12 -> "12.00%"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatMonths formats a month count as years plus months.
// e.g., 84 -> "84 (7y)", 90 -> "90 (7y 6m)"
func FormatMonths(n int) string {
	if n < 12 {
		return fmt.Sprintf("%d", n)
	}
	years, rest := n/12, n%12
	if rest == 0 {
		return fmt.Sprintf("%d (%dy)", n, years)
	}
	return fmt.Sprintf("%d (%dy %dm)", n, years, rest)
}

// FormatNumber adds thousands separators to an integer.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}
