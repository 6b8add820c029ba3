package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// accountService owns the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, auditSvc portssvc.AuditService) portssvc.AccountService {
	return &accountService{
		BaseService: BaseService{AuditSvc: auditSvc},
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountService = (*accountService)(nil)

// CreateAccount adds a new account to the owner's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	switch req.AccountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		return nil, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	actorID := middleware.GetActorIDFromCtx(ctx)
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     ownerID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("owner_id", ownerID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionCreateAccount, "account", account.AccountID, map[string]string{
		"code": account.Code,
		"name": account.Name,
		"type": string(account.AccountType),
	})

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByCode retrieves an account by its code within the owner's chart.
func (s *accountService) GetAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, ownerID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, verifying each belongs to the owner.
func (s *accountService) GetAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts by IDs", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for id, acc := range accountsMap {
		if acc.OwnerID != ownerID {
			// Obscure existence of accounts in other charts
			delete(accountsMap, id)
		}
	}
	return accountsMap, nil
}

// ListAccounts retrieves the owner's accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. Accounts with posting history
// are never deleted; deactivation only blocks future postings.
func (s *accountService) DeactivateAccount(ctx context.Context, ownerID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.OwnerID != ownerID {
		return apperrors.ErrNotFound // Obscure existence
	}

	now := time.Now().UTC()
	actorID := middleware.GetActorIDFromCtx(ctx)
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.RecordAudit(ctx, ownerID, domain.AuditActionDeactivateAccount, "account", accountID, map[string]string{
		"code": account.Code,
	})

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}
