// Package display formats measurement values for terminal and report
// output and renders the styled run summary.
package display

import (
	"fmt"
	"math"
)

// NA is the placeholder for values the analysis could not determine.
const NA = "n/a"

// FormatDuration renders seconds as mm:ss. Hours fold into the minute
// field (90 minutes prints as 90:00).
func FormatDuration(seconds *float64) string {
	if seconds == nil || *seconds < 0 || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) {
		return NA
	}
	total := int(math.Round(*seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FloatCell renders a nullable measurement with two decimals.
func FloatCell(v *float64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%.2f", *v)
}

// SignedFloatCell renders a nullable gain with an explicit sign (+0.00).
func SignedFloatCell(v *float64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%+.2f", *v)
}

// IntCell renders a nullable integer.
func IntCell(v *int) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%d", *v)
}

// Int64Cell renders a nullable 64-bit integer.
func Int64Cell(v *int64) string {
	if v == nil {
		return NA
	}
	return fmt.Sprintf("%d", *v)
}

// StringCell renders a nullable string.
func StringCell(v *string) string {
	if v == nil || *v == "" {
		return NA
	}
	return *v
}
