package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal entry by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// FindJournalByClientRef retrieves the journal entry previously posted with
	// the given idempotency tag, or ErrNotFound.
	FindJournalByClientRef(ctx context.Context, ownerID string, clientRef string) (*domain.JournalEntry, error)

	// ListJournalsByOwner retrieves a paginated list of journal entries using
	// token-based pagination. Returns the entries, a token for the next page, and an error.
	ListJournalsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data. Posted entries are
// immutable; there is no update or delete.
type JournalWriter interface {
	// SaveJournal persists a journal entry, its lines, and the resulting account
	// balance changes within a single database transaction, and appends the
	// audit record for the posting.
	SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error
}

// LineReader defines read operations for journal line data.
type LineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal entry in posting order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of lines posted against an
	// account, newest first, joined with parent entry description and date.
	ListLinesByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
