package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in an owner's chart of accounts.
// Balance is the persisted running balance in the account's natural sign;
// it is mutated only by the posting transaction, never directly.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	OwnerID     string          `json:"ownerID"`   // Owning principal; supplied by the caller
	Code        string          `json:"code"`      // Human-readable identifier, unique per owner (e.g. "1000-AR")
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"` // Accounts are deactivated, never deleted
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}

// AccountRole identifies the conventional role an account plays when business
// events (invoices, payments) are translated into journal entries.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "accounts_receivable"
	RoleRevenue            AccountRole = "revenue"
	RoleCash               AccountRole = "cash"
)

// AccountRoleMapping binds a role to a specific account within an owner's chart.
// Configured explicitly so posting does not depend on naming conventions.
type AccountRoleMapping struct {
	OwnerID   string      `json:"ownerID"`
	Role      AccountRole `json:"role"`
	AccountID string      `json:"accountID"`
	AuditFields
}
