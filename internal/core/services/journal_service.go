package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/dto"
	"github.com/wealthpilot/ledger/internal/middleware"
	"github.com/wealthpilot/ledger/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced  = errors.New("journal lines do not balance")
	ErrJournalMinLines    = errors.New("journal must have at least two lines")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService provides the core posting operations. Every money movement in
// the system, manual or synthesized from a business event, flows through it.
type journalService struct {
	BaseService
	accountSvc  portssvc.AccountService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountService, auditSvc portssvc.AuditService) portssvc.JournalService {
	return &journalService{
		BaseService: BaseService{AuditSvc: auditSvc},
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

// calculateJournalAmount computes the true economic value of an entry.
// For a balanced entry with equal debit and credit sides, the debit side
// represents the actual money movement.
func (s *journalService) calculateJournalAmount(lines []domain.JournalLine) decimal.Decimal {
	totalDebits := decimal.Zero
	for _, line := range lines {
		if line.Direction == domain.Debit {
			totalDebits = totalDebits.Add(line.Amount)
		}
	}
	return totalDebits
}

// uniqueStrings returns a slice containing only the unique strings from the input slice.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

// CreateJournalEntry validates and posts a balanced journal entry.
//
// Validation failures leave no trace: nothing is written unless every check
// passes. A repeated clientRef returns the previously posted entry unchanged.
func (s *journalService) CreateJournalEntry(ctx context.Context, ownerID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	// --- Basic Validation ---
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinLines)
	}

	accountSet := make(map[string]bool)
	for _, lineReq := range req.Lines {
		accountSet[lineReq.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinAccounts)
	}

	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	// --- Idempotency Check ---
	// A posting retried with the same clientRef must not double-post. The
	// unique index on (owner, client_ref) is the real guarantee; this lookup
	// just makes the common retry cheap.
	if req.ClientRef != nil && *req.ClientRef != "" {
		existing, err := s.journalRepo.FindJournalByClientRef(ctx, ownerID, *req.ClientRef)
		if err == nil {
			logger.Info("Journal posting replayed via clientRef",
				slog.String("client_ref", *req.ClientRef),
				slog.String("journal_id", existing.JournalID))
			return s.withLines(ctx, existing)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check clientRef: %w", err)
		}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	actorID := middleware.GetActorIDFromCtx(ctx)
	postedAt := req.PostedAt
	if postedAt.IsZero() {
		postedAt = now
	}

	// Prepare domain lines from the DTO
	domainLines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}

		domainLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNumber:  i + 1, // Caller-supplied order is significant for display
			AccountID:   lineReq.AccountID,
			Amount:      lineReq.Amount,
			Direction:   lineReq.Direction,
			Description: lineReq.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
			// RunningBalance is calculated and set by the repository
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Double-entry check: debits must equal credits
	if err := accounting.ValidateDoubleEntry(domainLines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// --- Fetch Accounts and Validate Further ---
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, ownerID, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for journal posting", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s: %w", ErrAccountNotFound, id, apperrors.ErrNotFound)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	// --- Calculate Net Balance Changes for Accounts ---
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range domainLines {
		accountType := accountTypes[line.AccountID] // Known to exist from validation
		signedAmount, err := accounting.SignedAmount(line, accountType)
		if err != nil {
			logger.Error("Error calculating signed amount during balance change calculation", slog.String("error", err.Error()), slog.String("line_id", line.LineID))
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		if currentChange, ok := balanceChanges[line.AccountID]; ok {
			balanceChanges[line.AccountID] = currentChange.Add(signedAmount)
		} else {
			balanceChanges[line.AccountID] = signedAmount
		}
	}

	// --- Persistence ---
	entry := domain.JournalEntry{
		JournalID:   journalID,
		OwnerID:     ownerID,
		Description: req.Description,
		ClientRef:   req.ClientRef,
		Status:      domain.Posted,
		PostedAt:    postedAt,
		Amount:      s.calculateJournalAmount(domainLines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = s.journalRepo.SaveJournal(ctx, entry, domainLines, balanceChanges)
	if err != nil {
		// A concurrent request with the same clientRef may have won the race:
		// the unique index rejects our insert, the winner's entry is the result.
		if errors.Is(err, apperrors.ErrDuplicate) && req.ClientRef != nil && *req.ClientRef != "" {
			existing, findErr := s.journalRepo.FindJournalByClientRef(ctx, ownerID, *req.ClientRef)
			if findErr == nil {
				logger.Info("Journal posting lost clientRef race, returning winner",
					slog.String("client_ref", *req.ClientRef),
					slog.String("journal_id", existing.JournalID))
				return s.withLines(ctx, existing)
			}
		}
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("owner_id", ownerID),
		slog.String("amount", entry.Amount.String()),
		slog.Int("line_count", len(domainLines)))

	entry.Lines = domainLines
	return &entry, nil
}

// GetJournalEntryByID retrieves an entry with its lines populated.
func (s *journalService) GetJournalEntryByID(ctx context.Context, ownerID string, journalID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	if entry.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	return s.withLines(ctx, entry)
}

// withLines populates an entry with its lines and the joined entry details.
func (s *journalService) withLines(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, entry.JournalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for journal", slog.String("journal_id", entry.JournalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", entry.JournalID, apperrors.ErrInternal)
	}
	for i := range lines {
		lines[i].JournalDescription = entry.Description
		lines[i].JournalPostedAt = entry.PostedAt
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournalEntries retrieves a paginated list of the owner's entries, newest first.
func (s *journalService) ListJournalEntries(ctx context.Context, ownerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := s.GetLogger(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListJournalsByOwner(ctx, ownerID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	entryResponses := make([]dto.JournalEntryResponse, len(entries))
	for i, entry := range entries {
		entryResponses[i] = dto.ToJournalEntryResponse(&entry)
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}, nil
}
