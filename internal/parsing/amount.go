package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// amountFallback matches an integer with an optional 1-2 digit fraction. It
// is the last resort when the cleaned string still refuses to parse whole.
var amountFallback = regexp.MustCompile(`[0-9]+(?:\.[0-9]{1,2})?`)

// NormalizeAmount canonicalizes an ambiguous numeric string to a decimal
// value. It accepts both separator conventions: "1,234.56" and "1.234,56"
// both come back as 1234.56, and a lone comma is treated as the decimal
// separator ("3,6" -> 3.6). Returns nil when no number can be recovered.
func NormalizeAmount(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return nil
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// Whichever separator appears later is the decimal point; the
		// other is a thousands separator.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}
	if m := amountFallback.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return &v
		}
	}
	return nil
}
