package repositories

import (
	"context"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// AuditLogRepository defines persistence for the append-only audit trail.
// There are no update or delete operations.
type AuditLogRepository interface {
	// SaveAuditLog appends a new audit record.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs retrieves an owner's audit records, newest first.
	ListAuditLogs(ctx context.Context, ownerID string, limit int, offset int) ([]domain.AuditLog, error)
}

// BankTransactionRepository defines persistence for external bank feed records.
type BankTransactionRepository interface {
	// SaveBankTransaction persists a new bank feed record.
	SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error

	// ListBankTransactions retrieves an owner's bank feed records, newest first.
	ListBankTransactions(ctx context.Context, ownerID string, limit int, offset int) ([]domain.BankTransaction, error)
}
