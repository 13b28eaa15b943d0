// Package export renders parsed invoice records into spreadsheet formats.
// Cells for absent values are left empty rather than zero-filled, so a
// missing field is distinguishable from an actual zero amount.
package export

import (
	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

// Columns is the output column order. It matches the JSON field names of
// parsing.Record one to one.
var Columns = []string{
	"invoice_id",
	"invoice_status",
	"invoice_date",
	"payment_type",
	"tax_id",
	"product_name",
	"deal_plan",
	"line_subtotal",
	"line_plan_discount",
	"line_total",
	"invoice_subtotal",
	"invoice_plan_discount_total",
	"invoice_tax",
	"invoice_total_paid",
	"source_document_reference",
}

// recordCells returns one record's cell values in column order. Absent
// values come back as untyped nil so writers can leave the cell blank.
func recordCells(r parsing.Record) []any {
	return []any{
		strCell(r.InvoiceID),
		strCell(r.InvoiceStatus),
		strCell(r.InvoiceDate),
		strCell(r.PaymentType),
		strCell(r.TaxID),
		strCell(r.ProductName),
		strCell(r.DealPlan),
		amountCell(r.LineSubtotal),
		amountCell(r.LinePlanDiscount),
		amountCell(r.LineTotal),
		amountCell(r.InvoiceSubtotal),
		amountCell(r.InvoicePlanDiscountTotal),
		amountCell(r.InvoiceTax),
		amountCell(r.InvoiceTotalPaid),
		r.SourceDocument,
	}
}

func strCell(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func amountCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
