package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func strp(s string) *string   { return &s }
func amtp(v float64) *float64 { return &v }

var _ = Describe("AssembleRecords", func() {
	var (
		header  Header
		items   []LineItem
		records []Record
	)

	BeforeEach(func() {
		header = Header{
			InvoiceID: strp("3f9c2a718b2d4e1a9c0f"),
			Status:    strp("PAID"),
			TotalPaid: amtp(42.00),
			Subtotal:  amtp(59.00),
		}
		items = nil
	})

	JustBeforeEach(func() {
		records = AssembleRecords(header, items, "invoices/a.pdf")
	})

	When("exactly one item is missing its total", func() {
		BeforeEach(func() {
			items = []LineItem{{ProductName: strp("Acme Widget")}}
		})

		It("should backfill the line total from the total paid", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].LineTotal).NotTo(BeNil())
			Expect(*records[0].LineTotal).To(Equal(42.00))
		})

		It("should backfill the line subtotal from the invoice subtotal", func() {
			Expect(records[0].LineSubtotal).NotTo(BeNil())
			Expect(*records[0].LineSubtotal).To(Equal(59.00))
		})

		It("should not mutate the caller's item", func() {
			Expect(items[0].Total).To(BeNil())
			Expect(items[0].Subtotal).To(BeNil())
		})
	})

	When("exactly one item already carries its amounts", func() {
		BeforeEach(func() {
			items = []LineItem{{
				ProductName: strp("Acme Widget"),
				Subtotal:    amtp(10.00),
				Total:       amtp(8.00),
			}}
		})

		It("should leave them alone", func() {
			Expect(*records[0].LineSubtotal).To(Equal(10.00))
			Expect(*records[0].LineTotal).To(Equal(8.00))
		})
	})

	When("two items are present", func() {
		BeforeEach(func() {
			items = []LineItem{
				{ProductName: strp("Acme Widget")},
				{ProductName: strp("Beta Widget")},
			}
		})

		It("should emit one record per item", func() {
			Expect(records).To(HaveLen(2))
		})

		It("should not backfill any line amounts", func() {
			Expect(records[0].LineTotal).To(BeNil())
			Expect(records[1].LineTotal).To(BeNil())
		})

		It("should carry identical header fields on every record", func() {
			Expect(records[0].InvoiceID).To(Equal(records[1].InvoiceID))
			Expect(records[0].InvoiceTotalPaid).To(Equal(records[1].InvoiceTotalPaid))
		})
	})

	When("no items were detected but the invoice id was recovered", func() {
		It("should emit exactly one record", func() {
			Expect(records).To(HaveLen(1))
		})

		It("should leave every line-item field nil", func() {
			Expect(records[0].ProductName).To(BeNil())
			Expect(records[0].DealPlan).To(BeNil())
			Expect(records[0].LineSubtotal).To(BeNil())
			Expect(records[0].LinePlanDiscount).To(BeNil())
			Expect(records[0].LineTotal).To(BeNil())
		})

		It("should still carry the header fields and source reference", func() {
			Expect(*records[0].InvoiceID).To(Equal("3f9c2a718b2d4e1a9c0f"))
			Expect(records[0].SourceDocument).To(Equal("invoices/a.pdf"))
		})
	})

	When("no items were detected and no invoice id was recovered", func() {
		BeforeEach(func() {
			header.InvoiceID = nil
		})

		It("should emit zero records", func() {
			Expect(records).To(BeEmpty())
		})
	})
})
