package invoice

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	invoiceBucketName = "invoices"
	runBucketName     = "runs"
)

// DB defines the interface for invoice persistence.
type DB interface {
	// SaveInvoice saves a parsed invoice
	SaveInvoice(inv *Invoice) error

	// GetInvoice retrieves an invoice by ID
	GetInvoice(id string) (*Invoice, error)

	// ListInvoices returns all invoices
	ListInvoices() ([]*Invoice, error)

	// DeleteInvoice removes an invoice
	DeleteInvoice(id string) error

	// AppendLog appends a per-document processing log entry
	AppendLog(entry *DocumentLog) error

	// ListLogs returns all log entries in append order
	ListLogs() ([]*DocumentLog, error)

	// Close closes the database
	Close() error
}

// BoltDB implements the DB interface using BoltDB.
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (or creates) the database file and its buckets.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(invoiceBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(runBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveInvoice saves a parsed invoice.
func (b *BoltDB) SaveInvoice(inv *Invoice) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		data, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("marshaling invoice: %w", err)
		}
		return bucket.Put([]byte(inv.ID), data)
	})
}

// GetInvoice retrieves an invoice by ID.
func (b *BoltDB) GetInvoice(id string) (*Invoice, error) {
	var inv *Invoice
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("invoice not found: %s", id)
		}
		return json.Unmarshal(data, &inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvoices returns all invoices.
func (b *BoltDB) ListInvoices() ([]*Invoice, error) {
	invoices := make([]*Invoice, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var inv Invoice
			if err := json.Unmarshal(v, &inv); err != nil {
				return fmt.Errorf("unmarshaling invoice: %w", err)
			}
			invoices = append(invoices, &inv)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice.
func (b *BoltDB) DeleteInvoice(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		return bucket.Delete([]byte(id))
	})
}

// AppendLog appends a per-document processing log entry. Entries are keyed
// by bucket sequence so append order survives.
func (b *BoltDB) AppendLog(entry *DocumentLog) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runBucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating log sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling log entry: %w", err)
		}
		return bucket.Put(key, data)
	})
}

// ListLogs returns all log entries in append order.
func (b *BoltDB) ListLogs() ([]*DocumentLog, error) {
	entries := make([]*DocumentLog, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var entry DocumentLog
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling log entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the database.
func (b *BoltDB) Close() error {
	return b.db.Close()
}
