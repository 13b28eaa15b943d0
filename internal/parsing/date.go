package parsing

import (
	"regexp"
	"time"
)

// datePatterns pairs each "Date:" anchor with the Go layout it must parse
// against. Patterns are tried in order; the first match that also parses
// wins, and no attempt is made to reconcile conflicting dates.
var datePatterns = []struct {
	layout string
	re     *regexp.Regexp
}{
	{"January 2, 2006", regexp.MustCompile(`(?i)Date:\s*([A-Za-z]+ \d{1,2}, \d{4})`)},
	{"Jan 2, 2006", regexp.MustCompile(`(?i)Date:\s*([A-Za-z]{3} \d{1,2}, \d{4})`)},
}

// ParseInvoiceDate searches the document text for a labeled invoice date and
// returns it in ISO 8601 form, or nil if no pattern matches or the matched
// text is not a valid date for its format.
func ParseInvoiceDate(text string) *string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, err := time.Parse(p.layout, m[1]); err == nil {
			iso := d.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}
