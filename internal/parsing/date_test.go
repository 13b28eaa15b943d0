package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseInvoiceDate", func() {
	var (
		text   string
		result *string
	)

	JustBeforeEach(func() {
		result = ParseInvoiceDate(text)
	})

	When("the text carries a long month name date", func() {
		BeforeEach(func() {
			text = "Invoice\nDate: March 5, 2023\nStatus: PAID"
		})

		It("should return the ISO date", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(Equal("2023-03-05"))
		})
	})

	When("the text carries an abbreviated month name date", func() {
		BeforeEach(func() {
			text = "Date: Mar 5, 2023"
		})

		It("should return the ISO date", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(Equal("2023-03-05"))
		})
	})

	When("the label and value are separated by extra whitespace", func() {
		BeforeEach(func() {
			text = "Date:   December 31, 2024"
		})

		It("should still match", func() {
			Expect(result).NotTo(BeNil())
			Expect(*result).To(Equal("2024-12-31"))
		})
	})

	When("there is no Date label", func() {
		BeforeEach(func() {
			text = "March 5, 2023"
		})

		It("should return nil", func() {
			Expect(result).To(BeNil())
		})
	})

	When("the labeled date is not a real calendar date", func() {
		BeforeEach(func() {
			text = "Date: Smarch 45, 2023"
		})

		It("should return nil", func() {
			Expect(result).To(BeNil())
		})
	})
})
