package domain

import (
	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceIssued InvoiceStatus = "ISSUED"
	InvoicePaid   InvoiceStatus = "PAID"
)

// Invoice represents a billing record for a customer. Issuing an invoice posts
// a journal entry (debit AR, credit Revenue) when the role accounts resolve;
// JournalID links to that entry, or is nil when posting was skipped.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary key (UUID)
	OwnerID      string          `json:"ownerID"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       InvoiceStatus   `json:"status"`
	JournalID    *string         `json:"journalID,omitempty"`
	AuditFields
}
