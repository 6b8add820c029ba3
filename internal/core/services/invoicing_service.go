package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/dto"
	"github.com/wealthpilot/ledger/internal/middleware"
)

// Conventional account codes tried when no explicit role mapping exists.
var conventionalRoleCodes = map[domain.AccountRole]string{
	domain.RoleAccountsReceivable: "1000-AR",
	domain.RoleRevenue:            "4000-REVENUE",
	domain.RoleCash:               "1000-CASH",
}

// Name substrings tried as a last resort when neither mapping nor code matches.
var conventionalRoleNames = map[domain.AccountRole]string{
	domain.RoleAccountsReceivable: "receivable",
	domain.RoleRevenue:            "revenue",
	domain.RoleCash:               "cash",
}

// roleScanPageSize is the page size used when scanning the chart of accounts
// for a role by name.
const roleScanPageSize = 500

// invoicingService bridges business events (issuing invoices, receiving cash)
// into balanced journal entries. When the role accounts cannot be resolved the
// business record still persists and posting is skipped with a warning, so a
// half-configured chart of accounts never blocks revenue operations.
type invoicingService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepository
	paymentRepo portsrepo.PaymentRepository
	roleRepo    portsrepo.AccountRoleRepository
	accountSvc  portssvc.AccountService
	journalSvc  portssvc.JournalService
}

// NewInvoicingService creates a new InvoicingService.
func NewInvoicingService(
	invoiceRepo portsrepo.InvoiceRepository,
	paymentRepo portsrepo.PaymentRepository,
	roleRepo portsrepo.AccountRoleRepository,
	accountSvc portssvc.AccountService,
	journalSvc portssvc.JournalService,
	auditSvc portssvc.AuditService,
) portssvc.InvoicingService {
	return &invoicingService{
		BaseService: BaseService{AuditSvc: auditSvc},
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		roleRepo:    roleRepo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.InvoicingService = (*invoicingService)(nil)

// resolveRoleAccount finds the active account playing the given role for an
// owner. Resolution order: explicit mapping, conventional code, name substring.
func (s *invoicingService) resolveRoleAccount(ctx context.Context, ownerID string, role domain.AccountRole) (*domain.Account, error) {
	// Explicit mapping wins
	mapping, err := s.roleRepo.FindRoleMapping(ctx, ownerID, role)
	if err == nil {
		accounts, accErr := s.accountSvc.GetAccountsByIDs(ctx, ownerID, []string{mapping.AccountID})
		if accErr != nil {
			return nil, accErr
		}
		if acc, found := accounts[mapping.AccountID]; found && acc.IsActive {
			return &acc, nil
		}
		return nil, fmt.Errorf("%w: mapped account for role %s is missing or inactive", apperrors.ErrNotFound, role)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Conventional code fallback
	if code, ok := conventionalRoleCodes[role]; ok {
		acc, codeErr := s.accountSvc.GetAccountByCode(ctx, ownerID, code)
		if codeErr == nil && acc.IsActive {
			return acc, nil
		}
		if codeErr != nil && !errors.Is(codeErr, apperrors.ErrNotFound) {
			return nil, codeErr
		}
	}

	// Name substring fallback, paged so charts larger than one page are
	// scanned in full
	needle := conventionalRoleNames[role]
	for offset := 0; ; offset += roleScanPageSize {
		accounts, listErr := s.accountSvc.ListAccounts(ctx, ownerID, roleScanPageSize, offset)
		if listErr != nil {
			return nil, listErr
		}
		for i := range accounts {
			acc := accounts[i]
			if acc.IsActive && strings.Contains(strings.ToLower(acc.Name), needle) {
				return &acc, nil
			}
		}
		if len(accounts) < roleScanPageSize {
			break
		}
	}

	return nil, fmt.Errorf("%w: no account resolves role %s", apperrors.ErrNotFound, role)
}

// CreateInvoice persists an invoice and posts the matching journal entry
// (debit AR, credit Revenue) when the role accounts resolve.
func (s *invoicingService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	if req.Total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice total must be positive", apperrors.ErrValidation)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	actorID := middleware.GetActorIDFromCtx(ctx)
	invoice := domain.Invoice{
		InvoiceID:    uuid.NewString(),
		OwnerID:      ownerID,
		CustomerName: req.CustomerName,
		Total:        req.Total,
		Status:       domain.InvoiceIssued,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionCreateInvoice, "invoice", invoice.InvoiceID, map[string]string{
		"customer": invoice.CustomerName,
		"total":    invoice.Total.String(),
	})

	// Resolve role accounts. Failure here degrades, it does not fail the call.
	arAccount, arErr := s.resolveRoleAccount(ctx, ownerID, domain.RoleAccountsReceivable)
	revenueAccount, revErr := s.resolveRoleAccount(ctx, ownerID, domain.RoleRevenue)
	if arErr != nil || revErr != nil {
		logger.Warn("Invoice saved without journal posting: role accounts unresolved",
			slog.String("invoice_id", invoice.InvoiceID),
			slog.Any("ar_error", arErr),
			slog.Any("revenue_error", revErr))
		s.RecordAudit(ctx, ownerID, domain.AuditActionInvoicePostingSkipped, "invoice", invoice.InvoiceID, map[string]string{
			"reason": "role accounts unresolved",
		})
		return &invoice, nil
	}

	clientRef := fmt.Sprintf("invoice-%s", invoice.InvoiceID)
	entry, err := s.journalSvc.CreateJournalEntry(ctx, ownerID, dto.CreateJournalEntryRequest{
		Description: fmt.Sprintf("Invoice %s: %s", invoice.InvoiceID, invoice.CustomerName),
		PostedAt:    now,
		ClientRef:   &clientRef,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: arAccount.AccountID, Amount: invoice.Total, Direction: domain.Debit},
			{AccountID: revenueAccount.AccountID, Amount: invoice.Total, Direction: domain.Credit},
		},
	})
	if err != nil {
		// The invoice already exists; posting failure is reported, not rolled back.
		logger.Warn("Invoice saved but journal posting failed",
			slog.String("invoice_id", invoice.InvoiceID),
			slog.String("error", err.Error()))
		s.RecordAudit(ctx, ownerID, domain.AuditActionInvoicePostingSkipped, "invoice", invoice.InvoiceID, map[string]string{
			"reason": err.Error(),
		})
		return &invoice, nil
	}

	if err := s.invoiceRepo.LinkInvoiceJournal(ctx, invoice.InvoiceID, entry.JournalID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to link invoice to journal", slog.String("invoice_id", invoice.InvoiceID), slog.String("journal_id", entry.JournalID))
		return nil, fmt.Errorf("failed to link invoice to journal: %w", err)
	}
	invoice.JournalID = &entry.JournalID

	logger.Info("Invoice created and posted",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("journal_id", entry.JournalID))
	return &invoice, nil
}

// RecordPayment persists a payment, posts debit Cash / credit AR when the role
// accounts resolve, and marks the referenced invoice paid.
func (s *invoicingService) RecordPayment(ctx context.Context, ownerID string, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	logger := s.GetLogger(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}

	// Verify the referenced invoice up front
	var invoice *domain.Invoice
	if req.InvoiceID != nil && *req.InvoiceID != "" {
		var err error
		invoice, err = s.invoiceRepo.FindInvoiceByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to find invoice %s: %w", *req.InvoiceID, err)
		}
		if invoice.OwnerID != ownerID {
			return nil, apperrors.ErrNotFound // Obscure existence
		}
	}

	now := time.Now().UTC()
	actorID := middleware.GetActorIDFromCtx(ctx)
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		OwnerID:   ownerID,
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    paidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionRecordPayment, "payment", payment.PaymentID, map[string]string{
		"amount": payment.Amount.String(),
		"method": payment.Method,
	})

	cashAccount, cashErr := s.resolveRoleAccount(ctx, ownerID, domain.RoleCash)
	arAccount, arErr := s.resolveRoleAccount(ctx, ownerID, domain.RoleAccountsReceivable)
	if cashErr != nil || arErr != nil {
		logger.Warn("Payment saved without journal posting: role accounts unresolved",
			slog.String("payment_id", payment.PaymentID),
			slog.Any("cash_error", cashErr),
			slog.Any("ar_error", arErr))
		s.RecordAudit(ctx, ownerID, domain.AuditActionPaymentPostingSkipped, "payment", payment.PaymentID, map[string]string{
			"reason": "role accounts unresolved",
		})
	} else {
		clientRef := fmt.Sprintf("payment-%s", payment.PaymentID)
		description := fmt.Sprintf("Payment %s via %s", payment.PaymentID, payment.Method)
		entry, err := s.journalSvc.CreateJournalEntry(ctx, ownerID, dto.CreateJournalEntryRequest{
			Description: description,
			PostedAt:    paidAt,
			ClientRef:   &clientRef,
			Lines: []dto.CreateJournalLineRequest{
				{AccountID: cashAccount.AccountID, Amount: payment.Amount, Direction: domain.Debit},
				{AccountID: arAccount.AccountID, Amount: payment.Amount, Direction: domain.Credit},
			},
		})
		if err != nil {
			logger.Warn("Payment saved but journal posting failed",
				slog.String("payment_id", payment.PaymentID),
				slog.String("error", err.Error()))
			s.RecordAudit(ctx, ownerID, domain.AuditActionPaymentPostingSkipped, "payment", payment.PaymentID, map[string]string{
				"reason": err.Error(),
			})
		} else {
			if err := s.paymentRepo.LinkPaymentJournal(ctx, payment.PaymentID, entry.JournalID, actorID, now); err != nil {
				s.LogError(ctx, err, "Failed to link payment to journal", slog.String("payment_id", payment.PaymentID))
				return nil, fmt.Errorf("failed to link payment to journal: %w", err)
			}
			payment.JournalID = &entry.JournalID
		}
	}

	// Settle the referenced invoice regardless of posting outcome: the cash
	// was received either way.
	if invoice != nil && invoice.Status != domain.InvoicePaid {
		if err := s.invoiceRepo.MarkInvoicePaid(ctx, invoice.InvoiceID, actorID, now); err != nil {
			s.LogError(ctx, err, "Failed to mark invoice paid", slog.String("invoice_id", invoice.InvoiceID))
			return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
		}
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

// SetAccountRole binds a role to an account code, replacing any previous binding.
func (s *invoicingService) SetAccountRole(ctx context.Context, ownerID string, role domain.AccountRole, accountCode string) (*domain.AccountRoleMapping, error) {
	switch role {
	case domain.RoleAccountsReceivable, domain.RoleRevenue, domain.RoleCash:
	default:
		return nil, fmt.Errorf("%w: unknown account role '%s'", apperrors.ErrValidation, role)
	}

	account, err := s.accountSvc.GetAccountByCode(ctx, ownerID, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account code %s: %w", accountCode, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountCode)
	}

	now := time.Now().UTC()
	actorID := middleware.GetActorIDFromCtx(ctx)
	mapping := domain.AccountRoleMapping{
		OwnerID:   ownerID,
		Role:      role,
		AccountID: account.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.roleRepo.UpsertRoleMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to upsert role mapping", slog.String("role", string(role)))
		return nil, fmt.Errorf("failed to save role mapping: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionSetAccountRole, "account_role", string(role), map[string]string{
		"account_id":   account.AccountID,
		"account_code": account.Code,
	})

	s.LogInfo(ctx, "Account role bound",
		slog.String("role", string(role)),
		slog.String("account_code", account.Code))
	return &mapping, nil
}

// ListInvoices retrieves the owner's invoices, newest first.
func (s *invoicingService) ListInvoices(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := s.invoiceRepo.ListInvoicesByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
