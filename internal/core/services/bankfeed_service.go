package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
)

// bankFeedService stores unreconciled external bank feed records. Feed records
// never touch the journal; they exist for later matching against postings.
type bankFeedService struct {
	BaseService
	bankTxnRepo portsrepo.BankTransactionRepository
}

// NewBankFeedService creates a new BankFeedService.
func NewBankFeedService(bankTxnRepo portsrepo.BankTransactionRepository, auditSvc portssvc.AuditService) portssvc.BankFeedService {
	return &bankFeedService{
		BaseService: BaseService{AuditSvc: auditSvc},
		bankTxnRepo: bankTxnRepo,
	}
}

var _ portssvc.BankFeedService = (*bankFeedService)(nil)

// RecordBankTransaction persists a bank feed record.
func (s *bankFeedService) RecordBankTransaction(ctx context.Context, ownerID string, txn domain.BankTransaction) (*domain.BankTransaction, error) {
	if txn.Amount.Equal(decimal.Zero) {
		return nil, fmt.Errorf("%w: bank transaction amount must be non-zero", apperrors.ErrValidation)
	}
	if txn.Description == "" {
		return nil, fmt.Errorf("%w: bank transaction description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn.BankTransactionID = uuid.NewString()
	txn.OwnerID = ownerID
	txn.CreatedAt = now
	if txn.PostedAt.IsZero() {
		txn.PostedAt = now
	}

	if err := s.bankTxnRepo.SaveBankTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save bank transaction", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save bank transaction: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionRecordBankTransaction, "bank_transaction", txn.BankTransactionID, map[string]string{
		"amount": txn.Amount.String(),
	})

	return &txn, nil
}

// ListBankTransactions retrieves an owner's bank feed records, newest first.
func (s *bankFeedService) ListBankTransactions(ctx context.Context, ownerID string, limit int, offset int) ([]domain.BankTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	txns, err := s.bankTxnRepo.ListBankTransactions(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank transactions", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txns, nil
}
