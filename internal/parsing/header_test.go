package parsing

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var headerLines = []string{
	"Invoice ID: 3f9c2a71-8b2d-4e1a-9c0f-77aa12bd34ef",
	"Status: paid",
	"Payment type: Visa ending in 4242",
	"Tax ID: EU372044161",
	"Invoice subtotal $59.00",
	"Total applied plan discount -$10.00",
	"Tax $0.00",
	"Total paid (Visa) $49.00",
}

var _ = Describe("ExtractHeader", func() {
	var (
		text   string
		header Header
	)

	JustBeforeEach(func() {
		header = ExtractHeader(text)
	})

	When("every labeled field is present", func() {
		BeforeEach(func() {
			text = strings.Join(headerLines, "\n")
		})

		It("should recover the invoice id", func() {
			Expect(header.InvoiceID).NotTo(BeNil())
			Expect(*header.InvoiceID).To(Equal("3f9c2a71-8b2d-4e1a-9c0f-77aa12bd34ef"))
		})

		It("should normalize the status to uppercase", func() {
			Expect(header.Status).NotTo(BeNil())
			Expect(*header.Status).To(Equal("PAID"))
		})

		It("should keep the rest of the payment type line", func() {
			Expect(header.PaymentType).NotTo(BeNil())
			Expect(*header.PaymentType).To(Equal("Visa ending in 4242"))
		})

		It("should recover the tax id token", func() {
			Expect(header.TaxID).NotTo(BeNil())
			Expect(*header.TaxID).To(Equal("EU372044161"))
		})

		It("should normalize the invoice subtotal", func() {
			Expect(header.Subtotal).NotTo(BeNil())
			Expect(*header.Subtotal).To(Equal(59.00))
		})

		It("should normalize the plan discount total", func() {
			Expect(header.PlanDiscountTotal).NotTo(BeNil())
			Expect(*header.PlanDiscountTotal).To(Equal(10.00))
		})

		It("should not let the tax id line satisfy the tax total", func() {
			Expect(header.Tax).NotTo(BeNil())
			Expect(*header.Tax).To(Equal(0.00))
		})

		It("should normalize the total paid", func() {
			Expect(header.TotalPaid).NotTo(BeNil())
			Expect(*header.TotalPaid).To(Equal(49.00))
		})
	})

	When("the labeled lines are permuted", func() {
		BeforeEach(func() {
			reversed := make([]string, len(headerLines))
			for i, ln := range headerLines {
				reversed[len(headerLines)-1-i] = ln
			}
			text = strings.Join(reversed, "\n")
		})

		It("should extract the same values as in document order", func() {
			Expect(header).To(Equal(ExtractHeader(strings.Join(headerLines, "\n"))))
		})
	})

	When("a label spans whitespace and line breaks", func() {
		BeforeEach(func() {
			text = "Invoice\n subtotal\n $ 1.234,56"
		})

		It("should still normalize the amount", func() {
			Expect(header.Subtotal).NotTo(BeNil())
			Expect(*header.Subtotal).To(Equal(1234.56))
		})
	})

	When("only some fields are present", func() {
		BeforeEach(func() {
			text = "Status: REFUNDED\nsome unrelated line"
		})

		It("should resolve the found field", func() {
			Expect(header.Status).NotTo(BeNil())
			Expect(*header.Status).To(Equal("REFUNDED"))
		})

		It("should leave every other field nil", func() {
			Expect(header.InvoiceID).To(BeNil())
			Expect(header.PaymentType).To(BeNil())
			Expect(header.TaxID).To(BeNil())
			Expect(header.Subtotal).To(BeNil())
			Expect(header.TotalPaid).To(BeNil())
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should return an all-nil header", func() {
			Expect(header).To(Equal(Header{}))
		})
	})
})
