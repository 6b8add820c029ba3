package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// CreateJournalLineRequest defines one line of a posting request.
type CreateJournalLineRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Direction   domain.Direction `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Description string           `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
type CreateJournalEntryRequest struct {
	Description string                     `json:"description" binding:"required"`
	PostedAt    time.Time                  `json:"postedAt"`
	ClientRef   *string                    `json:"clientRef"` // Optional idempotency tag
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID         string          `json:"lineID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      string          `json:"direction"`
	Description    string          `json:"description,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalID   string                `json:"journalID"`
	Description string                `json:"description"`
	ClientRef   *string               `json:"clientRef,omitempty"`
	Status      string                `json:"status"`
	PostedAt    time.Time             `json:"postedAt"`
	Amount      decimal.Decimal       `json:"amount"`
	CreatedAt   time.Time             `json:"createdAt"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:         line.LineID,
		LineNumber:     line.LineNumber,
		AccountID:      line.AccountID,
		Amount:         line.Amount,
		Direction:      string(line.Direction),
		Description:    line.Description,
		RunningBalance: line.RunningBalance,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalID:   entry.JournalID,
		Description: entry.Description,
		ClientRef:   entry.ClientRef,
		Status:      string(entry.Status),
		PostedAt:    entry.PostedAt,
		Amount:      entry.Amount,
		CreatedAt:   entry.CreatedAt,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = ToJournalLineResponse(&line)
		}
	}
	return resp
}
