package services

// ServiceContainer bundles all service implementations for injection into the
// transport layer.
type ServiceContainer struct {
	Account   AccountService
	Journal   JournalService
	Invoicing InvoicingService
	Reporting ReportingService
	Audit     AuditService
	BankFeed  BankFeedService
}
