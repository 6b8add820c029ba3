package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/utils/accounting"
)

// reportingService derives financial statements from posted journal history.
// Reports aggregate lines rather than reading the denormalized balance column,
// so a report is always consistent with the entries that produced it.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalRepositoryFacade
	accountSvc    portssvc.AccountService
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountService) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance lists every account's net movement as of a date. The repository
// returns raw debit and credit movement sums per account; this collapses each
// row to a single column (an account appears on its net side, never both) and
// derives the balance in the account's natural sign.
func (s *reportingService) TrialBalance(ctx context.Context, ownerID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, ownerID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	for i := range rows {
		net := rows[i].Debit.Sub(rows[i].Credit)

		if net.IsNegative() {
			rows[i].Debit = decimal.Zero
			rows[i].Credit = net.Neg()
		} else {
			rows[i].Debit = net
			rows[i].Credit = decimal.Zero
		}

		// Natural sign: debit-normal accounts grow with debits, the rest with credits
		if accounting.IsDebitNormal(rows[i].AccountType) {
			rows[i].Balance = net
		} else {
			rows[i].Balance = net.Neg()
		}
	}

	return rows, nil
}

// ProfitAndLoss reports revenue minus expenses for lines posted within [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, ownerID string, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, ownerID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch profit and loss data", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to generate profit and loss report: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	return &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: totalRevenue.Sub(totalExpenses),
	}, nil
}

// currentPeriodEarningsLabel names the synthesized equity row that folds
// unclosed revenue and expense into the balance sheet.
const currentPeriodEarningsLabel = "Current Period Earnings"

// BalanceSheet reports assets, liabilities, and equity as of a date. There is
// no closing-entry mechanism, so accumulated revenue and expense still live in
// their own accounts; they are folded into equity as a synthesized
// current-period-earnings row. That is what makes TotalAssets equal
// TotalLiabilities plus TotalEquity for balanced books.
func (s *reportingService) BalanceSheet(ctx context.Context, ownerID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, ownerID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch balance sheet data", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	sum := func(amounts []domain.AccountAmount) decimal.Decimal {
		total := decimal.Zero
		for _, a := range amounts {
			total = total.Add(a.NetAmount)
		}
		return total
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, ownerID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch earnings for balance sheet", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}
	if earnings := sum(revenue).Sub(sum(expenses)); !earnings.IsZero() {
		equity = append(equity, domain.AccountAmount{
			Name:      currentPeriodEarningsLabel,
			NetAmount: earnings,
		})
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sum(assets),
		TotalLiabilities: sum(liabilities),
		TotalEquity:      sum(equity),
	}, nil
}

// AccountLedger returns an account looked up by code plus its posted lines,
// newest first, with cursor pagination.
func (s *reportingService) AccountLedger(ctx context.Context, ownerID string, accountCode string, limit int, nextToken *string) (*domain.AccountLedger, *string, error) {
	account, err := s.accountSvc.GetAccountByCode(ctx, ownerID, accountCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve account for ledger view", slog.String("code", accountCode))
		}
		return nil, nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	lines, newNextToken, err := s.journalRepo.ListLinesByAccountID(ctx, ownerID, account.AccountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines for account ledger", slog.String("account_id", account.AccountID))
		return nil, nil, fmt.Errorf("failed to retrieve account ledger: %w", err)
	}

	return &domain.AccountLedger{
		Account: *account,
		Lines:   lines,
	}, newNextToken, nil
}
