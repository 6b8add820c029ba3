package services

import (
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories. Dependency
// order matters: audit first (everything records through it), then accounts,
// then the posting engine, then the services built on top of posting.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)
	accountSvc := NewAccountService(repos.AccountRepo, auditSvc)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, auditSvc)
	invoicingSvc := NewInvoicingService(repos.InvoiceRepo, repos.PaymentRepo, repos.AccountRoleRepo, accountSvc, journalSvc, auditSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.JournalRepo, accountSvc)
	bankFeedSvc := NewBankFeedService(repos.BankTxnRepo, auditSvc)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Invoicing: invoicingSvc,
		Reporting: reportingSvc,
		Audit:     auditSvc,
		BankFeed:  bankFeedSvc,
	}
}
