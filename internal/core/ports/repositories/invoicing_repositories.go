package repositories

import (
	"context"
	"time"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByID retrieves an invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// LinkInvoiceJournal stores the id of the auto-posted journal entry on the invoice.
	LinkInvoiceJournal(ctx context.Context, invoiceID string, journalID string, userID string, now time.Time) error

	// MarkInvoicePaid transitions an invoice to PAID.
	MarkInvoicePaid(ctx context.Context, invoiceID string, userID string, now time.Time) error

	// ListInvoicesByOwner retrieves an owner's invoices, newest first.
	ListInvoicesByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Invoice, error)
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// LinkPaymentJournal stores the id of the auto-posted journal entry on the payment.
	LinkPaymentJournal(ctx context.Context, paymentID string, journalID string, userID string, now time.Time) error

	// ListPaymentsByOwner retrieves an owner's payments, newest first.
	ListPaymentsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Payment, error)
}

// AccountRoleRepository defines persistence for role -> account mappings.
type AccountRoleRepository interface {
	// UpsertRoleMapping creates or replaces the mapping for a role within an owner's chart.
	UpsertRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error

	// FindRoleMapping retrieves the mapping for a role, or ErrNotFound.
	FindRoleMapping(ctx context.Context, ownerID string, role domain.AccountRole) (*domain.AccountRoleMapping, error)
}
