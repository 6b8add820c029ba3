package services

import (
	"context"
	"time"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// ReportingService derives financial statements from posted journal history.
// All operations are read-only.
type ReportingService interface {
	// TrialBalance lists every account's debit or credit balance as of a date.
	TrialBalance(ctx context.Context, ownerID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss reports revenue minus expenses for lines posted within [from, to].
	ProfitAndLoss(ctx context.Context, ownerID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet reports assets, liabilities, and equity as of a date.
	BalanceSheet(ctx context.Context, ownerID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// AccountLedger returns an account (looked up by code) and its lines newest
	// first, with cursor pagination.
	AccountLedger(ctx context.Context, ownerID string, accountCode string, limit int, nextToken *string) (*domain.AccountLedger, *string, error)
}
