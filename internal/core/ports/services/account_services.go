package services

import (
	"context"

	"github.com/wealthpilot/ledger/internal/core/domain"
	"github.com/wealthpilot/ledger/internal/dto"
)

// AccountService owns the chart of accounts.
type AccountService interface {
	// CreateAccount adds an account to an owner's chart. Code must be unique
	// within the chart; a duplicate yields ErrDuplicate.
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code, or ErrNotFound.
	GetAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by id, keyed by account id.
	GetAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the owner's accounts ordered by code.
	ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, ownerID string, accountID string) error
}
