package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents cash received. A payment may reference the invoice it
// settles, or stand alone. Recording a payment posts a journal entry
// (debit Cash, credit AR) when the role accounts resolve.
type Payment struct {
	PaymentID string          `json:"paymentID"` // Primary key (UUID)
	OwnerID   string          `json:"ownerID"`
	InvoiceID *string         `json:"invoiceID,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // e.g. "wire", "card"
	PaidAt    time.Time       `json:"paidAt"`
	JournalID *string         `json:"journalID,omitempty"`
	AuditFields
}
