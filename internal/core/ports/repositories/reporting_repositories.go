package repositories

import (
	"context"
	"time"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over journal history.
// Reports are derived from posted lines rather than the denormalized balance
// column so that a report is always internally consistent.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit movement totals as of a date.
	GetTrialBalanceData(ctx context.Context, ownerID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns net amounts for revenue and expense accounts
	// whose lines were posted within [from, to].
	GetProfitAndLossData(ctx context.Context, ownerID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData returns net amounts for asset, liability, and equity
	// accounts as of a date.
	GetBalanceSheetData(ctx context.Context, ownerID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
}
