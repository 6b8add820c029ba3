package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines database transaction control operations.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider bundles all repository implementations for injection into
// the service layer. Constructed once at process start.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	JournalRepo     JournalRepositoryFacade
	InvoiceRepo     InvoiceRepository
	PaymentRepo     PaymentRepository
	AccountRoleRepo AccountRoleRepository
	AuditRepo       AuditLogRepository
	BankTxnRepo     BankTransactionRepository
	ReportingRepo   ReportingRepository
}
