package domain

import "time"

// AuditLog is an append-only record of a mutating action. Rows are never
// updated or deleted.
type AuditLog struct {
	AuditID    string            `json:"auditID"` // Primary key (UUID)
	OwnerID    string            `json:"ownerID"`
	Action     string            `json:"action"`     // e.g. "post_journal", "create_account"
	EntityType string            `json:"entityType"` // e.g. "journal_entry", "account"
	EntityID   string            `json:"entityID"`
	Details    map[string]string `json:"details,omitempty"` // Structured snapshot of what changed
	CreatedAt  time.Time         `json:"createdAt"`
}

// Audit actions recorded by the ledger core.
const (
	AuditActionCreateAccount         = "create_account"
	AuditActionDeactivateAccount     = "deactivate_account"
	AuditActionPostJournal           = "post_journal"
	AuditActionCreateInvoice         = "create_invoice"
	AuditActionInvoicePostingSkipped = "invoice_posting_skipped"
	AuditActionRecordPayment         = "record_payment"
	AuditActionPaymentPostingSkipped = "payment_posting_skipped"
	AuditActionSetAccountRole        = "set_account_role"
	AuditActionRecordBankTransaction = "record_bank_transaction"
)
