package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is an unreconciled record from an external bank feed.
// It is stored for reference only and is not linked into the journal.
type BankTransaction struct {
	BankTransactionID string          `json:"bankTransactionID"` // Primary key (UUID)
	OwnerID           string          `json:"ownerID"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	PostedAt          time.Time       `json:"postedAt"`
	CreatedAt         time.Time       `json:"createdAt"`
}
