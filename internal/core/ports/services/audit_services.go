package services

import (
	"context"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// AuditService appends immutable records of mutating actions. Recording is
// best-effort from the caller's perspective: a failed append is logged but
// never fails the operation that triggered it.
type AuditService interface {
	// Record appends an audit entry. Only required-field presence is validated.
	Record(ctx context.Context, entry domain.AuditLog) error

	// List retrieves an owner's audit records, newest first.
	List(ctx context.Context, ownerID string, limit int, offset int) ([]domain.AuditLog, error)
}

// BankFeedService stores unreconciled external bank feed records.
type BankFeedService interface {
	// RecordBankTransaction persists a bank feed record.
	RecordBankTransaction(ctx context.Context, ownerID string, txn domain.BankTransaction) (*domain.BankTransaction, error)

	// ListBankTransactions retrieves an owner's bank feed records, newest first.
	ListBankTransactions(ctx context.Context, ownerID string, limit int, offset int) ([]domain.BankTransaction, error)
}
