package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry. Entries are immutable
// once posted; corrections are made by posting an offsetting entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
)

// JournalEntry represents a single, balanced financial event composed of
// two or more journal lines.
type JournalEntry struct {
	JournalID   string          `json:"journalID"` // Primary key (UUID)
	OwnerID     string          `json:"ownerID"`
	Description string          `json:"description"`
	ClientRef   *string         `json:"clientRef,omitempty"` // Caller-supplied idempotency tag, unique per owner
	Status      JournalStatus   `json:"status"`
	PostedAt    time.Time       `json:"postedAt"`
	Amount      decimal.Decimal `json:"amount"` // Total economic value (sum of the debit side)
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}
