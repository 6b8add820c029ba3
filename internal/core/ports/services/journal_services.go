package services

import (
	"context"

	"github.com/wealthpilot/ledger/internal/core/domain"
	"github.com/wealthpilot/ledger/internal/dto"
)

// JournalService is the single choke point through which all money movement
// flows: every posting, manual or synthesized, goes through CreateJournalEntry.
type JournalService interface {
	// CreateJournalEntry validates and posts a balanced journal entry. An
	// unbalanced entry fails with ErrValidation and writes nothing. A repeated
	// clientRef returns the previously posted entry without writing.
	CreateJournalEntry(ctx context.Context, ownerID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// GetJournalEntryByID retrieves an entry with its lines populated.
	GetJournalEntryByID(ctx context.Context, ownerID string, journalID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of the owner's entries, newest first.
	ListJournalEntries(ctx context.Context, ownerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}
