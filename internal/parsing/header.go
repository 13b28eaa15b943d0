package parsing

import (
	"regexp"
	"strings"
)

// headerField binds one label-anchored pattern to the header field it fills.
// Adding a field means adding a table entry, not a new search site.
type headerField struct {
	re     *regexp.Regexp
	assign func(h *Header, raw string)
}

func assignText(dst func(h *Header) **string) func(*Header, string) {
	return func(h *Header, raw string) {
		v := strings.TrimSpace(raw)
		*dst(h) = &v
	}
}

func assignAmount(dst func(h *Header) **float64) func(*Header, string) {
	return func(h *Header, raw string) {
		*dst(h) = NormalizeAmount(raw)
	}
}

// headerFields anchors every document-level field. All patterns are
// case-insensitive and tolerate whitespace or line breaks between the label
// and its value. The plain "Tax" total must be followed by digits, so a
// "Tax ID:" line can never satisfy it.
var headerFields = []headerField{
	{regexp.MustCompile(`(?i)Invoice ID:\s*([0-9a-f-]{16,})`), assignText(func(h *Header) **string { return &h.InvoiceID })},
	{regexp.MustCompile(`(?i)Status:\s*(PAID|REFUNDED)`), func(h *Header, raw string) {
		v := strings.ToUpper(strings.TrimSpace(raw))
		h.Status = &v
	}},
	{regexp.MustCompile(`(?i)Payment type:\s*([^\n]+)`), assignText(func(h *Header) **string { return &h.PaymentType })},
	{regexp.MustCompile(`(?i)Tax ID:\s*([A-Z0-9-]+)`), assignText(func(h *Header) **string { return &h.TaxID })},
	{regexp.MustCompile(`(?i)Invoice\s+subtotal\s*\$?\s*([0-9.,]+)`), assignAmount(func(h *Header) **float64 { return &h.Subtotal })},
	{regexp.MustCompile(`(?i)Total\s+applied\s+plan\s+discount\s*[-–]?\s*\$?\s*([0-9.,]+)`), assignAmount(func(h *Header) **float64 { return &h.PlanDiscountTotal })},
	{regexp.MustCompile(`(?i)Tax\s*\$?\s*([0-9.,]+)`), assignAmount(func(h *Header) **float64 { return &h.Tax })},
	{regexp.MustCompile(`(?i)Total\s+paid\s*\([^)]+\)\s*\$?\s*([0-9.,]+)`), assignAmount(func(h *Header) **float64 { return &h.TotalPaid })},
}

// ExtractHeader recovers the document-level invoice fields from text. Fields
// are resolved independently: the absence of one never affects another, and
// no field has a default other than nil.
func ExtractHeader(text string) Header {
	var h Header
	for _, f := range headerFields {
		if m := f.re.FindStringSubmatch(text); m != nil {
			f.assign(&h, m[1])
		}
	}
	return h
}
