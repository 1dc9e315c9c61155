// Package normalize holds the small string clean-ups applied to table cells
// and request parameters before they reach the filter.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// placeholders are cell values that mean "no data" in exported tables.
var placeholders = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
}

// Cell trims surrounding whitespace and maps missing-value placeholders to "".
func Cell(s string) string {
	s = strings.TrimSpace(s)
	if IsPlaceholder(s) {
		return ""
	}
	return s
}

// IsPlaceholder reports whether s is a textual missing-value marker.
func IsPlaceholder(s string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Province collapses composite labels such as "Granada / Andalucía" to the
// part before the first "/".
func Province(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "/"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// Header trims a column name and strips a leading UTF-8 BOM.
func Header(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

// QueryParam trims a request parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Key returns the folded comparison form of s.
func Key(s string) string {
	return text.Fold(strings.TrimSpace(s))
}
