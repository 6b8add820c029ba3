package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// RecordBankTransactionRequest defines the data for an external bank feed record.
type RecordBankTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	PostedAt    time.Time       `json:"postedAt"`
}

// BankTransactionResponse defines the data returned for a bank feed record.
type BankTransactionResponse struct {
	BankTransactionID string          `json:"bankTransactionID"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	PostedAt          time.Time       `json:"postedAt"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		BankTransactionID: t.BankTransactionID,
		Amount:            t.Amount,
		Description:       t.Description,
		PostedAt:          t.PostedAt,
	}
}

// ToBankTransactionResponses converts a slice of bank feed records.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	res := make([]BankTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToBankTransactionResponse(&t)
	}
	return res
}
