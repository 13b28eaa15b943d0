package parsing

// backfillSingleItem substitutes missing line-level amounts with the
// corresponding invoice-level totals. The policy applies only when exactly
// one line item was detected; multi-item documents are left untouched. The
// input slice is never mutated.
func backfillSingleItem(h Header, items []LineItem) []LineItem {
	if len(items) != 1 {
		return items
	}
	item := items[0]
	if item.Total == nil && h.TotalPaid != nil {
		item.Total = h.TotalPaid
	}
	if item.Subtotal == nil && h.Subtotal != nil {
		item.Subtotal = h.Subtotal
	}
	return []LineItem{item}
}

// AssembleRecords merges a header with its line items into the final ordered
// output rows. A document with no line items still yields a single all-nil
// item row when an invoice id was recovered; with neither, the document is
// unparseable and yields nothing.
func AssembleRecords(h Header, items []LineItem, sourceDocument string) []Record {
	items = backfillSingleItem(h, items)

	if len(items) == 0 {
		if h.InvoiceID == nil {
			return nil
		}
		return []Record{mergeRecord(h, LineItem{}, sourceDocument)}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, mergeRecord(h, item, sourceDocument))
	}
	return records
}

func mergeRecord(h Header, item LineItem, sourceDocument string) Record {
	return Record{
		InvoiceID:                h.InvoiceID,
		InvoiceStatus:            h.Status,
		InvoiceDate:              h.Date,
		PaymentType:              h.PaymentType,
		TaxID:                    h.TaxID,
		ProductName:              item.ProductName,
		DealPlan:                 item.DealPlan,
		LineSubtotal:             item.Subtotal,
		LinePlanDiscount:         item.PlanDiscount,
		LineTotal:                item.Total,
		InvoiceSubtotal:          h.Subtotal,
		InvoicePlanDiscountTotal: h.PlanDiscountTotal,
		InvoiceTax:               h.Tax,
		InvoiceTotalPaid:         h.TotalPaid,
		SourceDocument:           sourceDocument,
	}
}
