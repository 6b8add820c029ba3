package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	accountRoleRepo := newPgxAccountRoleRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	bankTxnRepo := newPgxBankTransactionRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		InvoiceRepo:     invoiceRepo,
		PaymentRepo:     paymentRepo,
		AccountRoleRepo: accountRoleRepo,
		AuditRepo:       auditRepo,
		BankTxnRepo:     bankTxnRepo,
		ReportingRepo:   reportingRepo,
	}
}
