package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a journal line is a debit or a credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// JournalLine represents a single posting within a journal entry, affecting one
// account. Amount is always a positive magnitude; the effect on the account
// balance depends on Direction and the account's type.
type JournalLine struct {
	LineID         string          `json:"lineID"`     // Primary key (UUID)
	JournalID      string          `json:"journalID"`  // FK -> JournalEntry
	LineNumber     int             `json:"lineNumber"` // 1-based position within the entry, as supplied by the caller
	AccountID      string          `json:"accountID"`  // FK -> Account
	Amount         decimal.Decimal `json:"amount"`
	Direction      Direction       `json:"direction"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line was applied
	AuditFields

	// Populated when lines are joined with their parent entry for ledger views.
	JournalDescription string    `json:"journalDescription,omitempty"`
	JournalPostedAt    time.Time `json:"journalPostedAt,omitempty"`
}
