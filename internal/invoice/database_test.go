package invoice

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	newTestInvoice := func(id string) *Invoice {
		name := "SuperStack Lifetime Deal"
		status := "PAID"
		return &Invoice{
			ID: id,
			Header: parsing.Header{
				InvoiceID: &id,
				Status:    &status,
			},
			Items:       []parsing.LineItem{{ProductName: &name}},
			SourceFile:  "invoices/superstack.pdf",
			ContentType: "application/pdf",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
	}

	Describe("SaveInvoice", func() {
		var (
			inv *Invoice
			err error
		)

		BeforeEach(func() {
			inv = newTestInvoice("test-id")
		})

		JustBeforeEach(func() {
			err = db.SaveInvoice(inv)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the invoice to the database", func() {
				saved, getErr := db.GetInvoice("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})
	})

	Describe("GetInvoice", func() {
		var (
			invoiceID string
			inv       *Invoice
			err       error
		)

		JustBeforeEach(func() {
			inv, err = db.GetInvoice(invoiceID)
		})

		When("invoice exists", func() {
			BeforeEach(func() {
				invoiceID = "test-id"
				Expect(db.SaveInvoice(newTestInvoice("test-id"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the correct invoice ID", func() {
				Expect(inv.ID).To(Equal("test-id"))
			})

			It("should round-trip the header fields", func() {
				Expect(*inv.Header.Status).To(Equal("PAID"))
			})

			It("should round-trip the line items", func() {
				Expect(inv.Items).To(HaveLen(1))
				Expect(*inv.Items[0].ProductName).To(Equal("SuperStack Lifetime Deal"))
			})
		})

		When("invoice does not exist", func() {
			var expectedErr error

			BeforeEach(func() {
				invoiceID = "nonexistent"
				expectedErr = errors.New("invoice not found: nonexistent")
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(expectedErr))
			})
		})
	})

	Describe("ListInvoices", func() {
		var (
			invoices []*Invoice
			err      error
		)

		JustBeforeEach(func() {
			invoices, err = db.ListInvoices()
		})

		When("invoices exist", func() {
			BeforeEach(func() {
				Expect(db.SaveInvoice(newTestInvoice("id1"))).NotTo(HaveOccurred())
				Expect(db.SaveInvoice(newTestInvoice("id2"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all invoices", func() {
				Expect(invoices).To(HaveLen(2))
			})
		})

		When("no invoices exist", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return an empty list", func() {
				Expect(invoices).To(BeEmpty())
			})
		})
	})

	Describe("DeleteInvoice", func() {
		var (
			invoiceID string
			err       error
		)

		JustBeforeEach(func() {
			err = db.DeleteInvoice(invoiceID)
		})

		When("invoice exists", func() {
			BeforeEach(func() {
				invoiceID = "test-id"
				Expect(db.SaveInvoice(newTestInvoice("test-id"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the invoice from the database", func() {
				_, getErr := db.GetInvoice("test-id")
				Expect(getErr).To(HaveOccurred())
			})
		})

		When("invoice does not exist", func() {
			BeforeEach(func() {
				invoiceID = "nonexistent"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("AppendLog", func() {
		var (
			entry *DocumentLog
			err   error
		)

		BeforeEach(func() {
			id := "test-id"
			entry = &DocumentLog{
				SourceFile:  "invoices/superstack.pdf",
				InvoiceID:   &id,
				Rows:        2,
				ProcessedAt: time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.AppendLog(entry)
		})

		When("appending succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should append the entry", func() {
				entries, listErr := db.ListLogs()
				Expect(listErr).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(1))
				Expect(entries[0].Rows).To(Equal(2))
			})
		})
	})

	Describe("ListLogs", func() {
		var (
			entries []*DocumentLog
			err     error
		)

		JustBeforeEach(func() {
			entries, err = db.ListLogs()
		})

		When("entries exist", func() {
			BeforeEach(func() {
				for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
					Expect(db.AppendLog(&DocumentLog{
						SourceFile:  name,
						ProcessedAt: time.Now(),
					})).NotTo(HaveOccurred())
				}
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return entries in append order", func() {
				Expect(entries).To(HaveLen(3))
				Expect(entries[0].SourceFile).To(Equal("a.pdf"))
				Expect(entries[1].SourceFile).To(Equal("b.pdf"))
				Expect(entries[2].SourceFile).To(Equal("c.pdf"))
			})
		})

		When("no entries exist", func() {
			It("should return an empty list", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(BeEmpty())
			})
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			err := db.Close()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
