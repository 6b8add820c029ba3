package services

import (
	"context"

	"github.com/wealthpilot/ledger/internal/core/domain"
	"github.com/wealthpilot/ledger/internal/dto"
)

// InvoicingService is the bridge that translates business events (issuing an
// invoice, receiving cash) into balanced journal entries.
type InvoicingService interface {
	// CreateInvoice persists an invoice and, when the AR and Revenue role
	// accounts resolve, posts the matching journal entry. When they do not,
	// the invoice still persists and a warning is recorded (degraded mode).
	CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// RecordPayment persists a payment, posts debit Cash / credit AR when the
	// role accounts resolve, and marks the referenced invoice paid.
	RecordPayment(ctx context.Context, ownerID string, req dto.RecordPaymentRequest) (*domain.Payment, error)

	// SetAccountRole binds a role to an account code. Fails fast if the account
	// does not exist or is inactive.
	SetAccountRole(ctx context.Context, ownerID string, role domain.AccountRole, accountCode string) (*domain.AccountRoleMapping, error)

	// ListInvoices retrieves the owner's invoices, newest first.
	ListInvoices(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Invoice, error)
}
