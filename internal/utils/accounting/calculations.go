package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// BalanceTolerance is the maximum allowed difference between the debit and
// credit sides of an entry. Decimal arithmetic is exact internally; the
// tolerance exists only for callers whose amounts originated as floats.
var BalanceTolerance = decimal.RequireFromString("0.01")

// SignedAmount applies the correct sign to a line amount based on account type
// and direction. This sign-flip table is the single place accounting semantics
// live; balance updates and reports both depend on it.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := line.Amount
	isDebit := line.Direction == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return signedAmount, nil
}

// IsDebitNormal reports whether accounts of the given type increase on debit.
func IsDebitNormal(accountType domain.AccountType) bool {
	return accountType == domain.Asset || accountType == domain.Expense
}

// ValidateDoubleEntry checks that a set of journal lines forms a valid
// double-entry posting: at least two lines, every amount positive, and the
// debit and credit sides equal within BalanceTolerance. Pure function, no side
// effects.
func ValidateDoubleEntry(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero

	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line amount must be positive for account %s", line.AccountID)
		}
		switch line.Direction {
		case domain.Debit:
			debitsSum = debitsSum.Add(line.Amount)
		case domain.Credit:
			creditsSum = creditsSum.Add(line.Amount)
		default:
			return fmt.Errorf("unknown line direction '%s' for account %s", line.Direction, line.AccountID)
		}
	}

	if debitsSum.Sub(creditsSum).Abs().GreaterThanOrEqual(BalanceTolerance) {
		return fmt.Errorf("debits must equal credits: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}

	return nil
}
