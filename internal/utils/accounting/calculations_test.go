package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpilot/ledger/internal/core/domain"
	"github.com/wealthpilot/ledger/internal/utils/accounting"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		accountType domain.AccountType
		direction   domain.Direction
		want        decimal.Decimal
	}{
		{"debit to asset increases", domain.Asset, domain.Debit, amount},
		{"credit to asset decreases", domain.Asset, domain.Credit, amount.Neg()},
		{"debit to expense increases", domain.Expense, domain.Debit, amount},
		{"credit to expense decreases", domain.Expense, domain.Credit, amount.Neg()},
		{"debit to liability decreases", domain.Liability, domain.Debit, amount.Neg()},
		{"credit to liability increases", domain.Liability, domain.Credit, amount},
		{"debit to equity decreases", domain.Equity, domain.Debit, amount.Neg()},
		{"credit to equity increases", domain.Equity, domain.Credit, amount},
		{"debit to revenue decreases", domain.Revenue, domain.Debit, amount.Neg()},
		{"credit to revenue increases", domain.Revenue, domain.Credit, amount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.JournalLine{AccountID: "acc-1", Amount: amount, Direction: tt.direction}
			got, err := accounting.SignedAmount(line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedAmount_UnknownAccountType(t *testing.T) {
	line := domain.JournalLine{AccountID: "acc-1", Amount: decimal.NewFromInt(100), Direction: domain.Debit}
	_, err := accounting.SignedAmount(line, domain.AccountType("GOODWILL"))
	assert.Error(t, err)
}

func TestIsDebitNormal(t *testing.T) {
	assert.True(t, accounting.IsDebitNormal(domain.Asset))
	assert.True(t, accounting.IsDebitNormal(domain.Expense))
	assert.False(t, accounting.IsDebitNormal(domain.Liability))
	assert.False(t, accounting.IsDebitNormal(domain.Equity))
	assert.False(t, accounting.IsDebitNormal(domain.Revenue))
}

func TestValidateDoubleEntry(t *testing.T) {
	debit := func(amount int64) domain.JournalLine {
		return domain.JournalLine{AccountID: "acc-debit", Amount: decimal.NewFromInt(amount), Direction: domain.Debit}
	}
	credit := func(amount int64) domain.JournalLine {
		return domain.JournalLine{AccountID: "acc-credit", Amount: decimal.NewFromInt(amount), Direction: domain.Credit}
	}

	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr string
	}{
		{
			name:  "balanced two lines",
			lines: []domain.JournalLine{debit(100), credit(100)},
		},
		{
			name:  "balanced split credit",
			lines: []domain.JournalLine{debit(100), credit(60), credit(40)},
		},
		{
			name:    "unbalanced by one",
			lines:   []domain.JournalLine{debit(100), credit(99)},
			wantErr: "debits must equal credits",
		},
		{
			name:    "single line",
			lines:   []domain.JournalLine{debit(100)},
			wantErr: "at least two lines",
		},
		{
			name:    "empty",
			lines:   nil,
			wantErr: "at least two lines",
		},
		{
			name:    "zero amount line",
			lines:   []domain.JournalLine{debit(100), {AccountID: "acc-credit", Amount: decimal.Zero, Direction: domain.Credit}},
			wantErr: "must be positive",
		},
		{
			name:    "negative amount line",
			lines:   []domain.JournalLine{debit(100), {AccountID: "acc-credit", Amount: decimal.NewFromInt(-100), Direction: domain.Credit}},
			wantErr: "must be positive",
		},
		{
			name:    "unknown direction",
			lines:   []domain.JournalLine{debit(100), {AccountID: "acc-credit", Amount: decimal.NewFromInt(100), Direction: domain.Direction("TRANSFER")}},
			wantErr: "unknown line direction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateDoubleEntry(tt.lines)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateDoubleEntry_WithinTolerance(t *testing.T) {
	// A sub-cent residue from float-originated amounts passes.
	lines := []domain.JournalLine{
		{AccountID: "acc-debit", Amount: decimal.RequireFromString("100.005"), Direction: domain.Debit},
		{AccountID: "acc-credit", Amount: decimal.RequireFromString("100.00"), Direction: domain.Credit},
	}
	assert.NoError(t, accounting.ValidateDoubleEntry(lines))

	// A full cent of imbalance does not.
	lines[0].Amount = decimal.RequireFromString("100.01")
	assert.Error(t, accounting.ValidateDoubleEntry(lines))
}
