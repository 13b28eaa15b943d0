// Package parsing recovers structured invoice records from free-form text.
//
// The source text comes out of PDF extraction and has no fixed layout: field
// order, whitespace, and line breaks vary by document. Every field is located
// independently by a label-anchored pattern, so a missing or mangled field
// never prevents recovery of the others.
package parsing

// Header holds the document-level fields of an invoice. Every field is
// optional; nil means the label was not found or its value was unusable.
type Header struct {
	InvoiceID         *string  `json:"invoice_id"`
	Status            *string  `json:"status"`
	Date              *string  `json:"date"` // ISO 8601 calendar date
	PaymentType       *string  `json:"payment_type"`
	TaxID             *string  `json:"tax_id"`
	Subtotal          *float64 `json:"subtotal"`
	PlanDiscountTotal *float64 `json:"plan_discount_total"`
	Tax               *float64 `json:"tax"`
	TotalPaid         *float64 `json:"total_paid"`
}

// LineItem holds one purchased product or deal within an invoice.
type LineItem struct {
	ProductName  *string  `json:"product_name"`
	DealPlan     *string  `json:"deal_plan"`
	Subtotal     *float64 `json:"subtotal"`
	PlanDiscount *float64 `json:"plan_discount"`
	Total        *float64 `json:"total"`
}

// Record is one flat output row: the full header field set unioned with one
// line item, plus a reference to the source document. All records produced
// from one document carry identical header values.
type Record struct {
	InvoiceID                *string  `json:"invoice_id"`
	InvoiceStatus            *string  `json:"invoice_status"`
	InvoiceDate              *string  `json:"invoice_date"`
	PaymentType              *string  `json:"payment_type"`
	TaxID                    *string  `json:"tax_id"`
	ProductName              *string  `json:"product_name"`
	DealPlan                 *string  `json:"deal_plan"`
	LineSubtotal             *float64 `json:"line_subtotal"`
	LinePlanDiscount         *float64 `json:"line_plan_discount"`
	LineTotal                *float64 `json:"line_total"`
	InvoiceSubtotal          *float64 `json:"invoice_subtotal"`
	InvoicePlanDiscountTotal *float64 `json:"invoice_plan_discount_total"`
	InvoiceTax               *float64 `json:"invoice_tax"`
	InvoiceTotalPaid         *float64 `json:"invoice_total_paid"`
	SourceDocument           string   `json:"source_document_reference"`
}

// Parse turns one document's text into its ordered output records. It is a
// pure function: identical input yields identical output, and empty or
// garbled text simply yields zero records.
func Parse(text, sourceDocument string) []Record {
	header := ExtractHeader(text)
	header.Date = ParseInvoiceDate(text)
	items := SegmentLineItems(text)
	return AssembleRecords(header, items, sourceDocument)
}
