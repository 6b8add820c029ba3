package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	"github.com/wealthpilot/ledger/internal/utils/accounting"
	"github.com/wealthpilot/ledger/internal/utils/pagination"
)

const journalColumns = `journal_id, owner_id, description, client_ref, status, posted_at, amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal persists an entry, its lines, the resulting account balance
// changes, and the posting's audit record within one database transaction.
// Either everything lands or nothing does.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits
	defer r.Rollback(ctx, tx)

	now := entry.CreatedAt
	userID := entry.CreatedBy

	// 1. Insert the journal entry. The unique index on (owner_id, client_ref)
	// rejects a concurrent posting with the same idempotency tag here.
	journalQuery := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, journalQuery,
		entry.JournalID,
		entry.OwnerID,
		entry.Description,
		entry.ClientRef,
		entry.Status,
		entry.PostedAt,
		entry.Amount,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(500, "failed to insert journal "+entry.JournalID, err)
	}

	// 2. Lock the affected accounts in sorted ID order so concurrent postings
	// touching the same accounts acquire locks in the same order.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Apply balance deltas
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert lines with calculated running balances
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, line_number, account_id, amount, direction, description, running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	// Running balance starts from the balance before this entry's changes
	currentRunningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Lines carry the caller-supplied order; running balances follow it
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].LineNumber < lines[j].LineNumber
	})

	for i := range lines {
		line := &lines[i]
		lockedAccount, ok := lockedAccounts[line.AccountID]
		if !ok {
			// The locking step finds all accounts; this is a bug if it fires
			return apperrors.NewAppError(500, "internal error: locked account "+line.AccountID+" not found during line processing", nil)
		}

		signedAmount, err := accounting.SignedAmount(*line, lockedAccount.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for line "+line.LineID, err)
		}

		newRunningBalance := currentRunningBalances[line.AccountID].Add(signedAmount)
		line.RunningBalance = newRunningBalance
		currentRunningBalances[line.AccountID] = newRunningBalance

		batch.Queue(lineQuery,
			line.LineID,
			line.JournalID,
			line.LineNumber,
			line.AccountID,
			line.Amount,
			line.Direction,
			line.Description,
			line.RunningBalance,
			now,
			userID,
			now,
			userID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(500, "failed to execute line batch for journal "+entry.JournalID, err)
	}

	// 5. Append the audit record inside the same transaction: a posting without
	// its audit row never becomes visible.
	details, err := json.Marshal(map[string]string{
		"amount":     entry.Amount.String(),
		"line_count": strconv.Itoa(len(lines)),
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal audit details for journal "+entry.JournalID, err)
	}
	auditQuery := `
		INSERT INTO audit_logs (audit_id, owner_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, auditQuery,
		uuid.NewString(),
		entry.OwnerID,
		domain.AuditActionPostJournal,
		"journal_entry",
		entry.JournalID,
		details,
		now,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record for journal "+entry.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return err
	}
	return nil
}

func scanJournal(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.JournalID,
		&e.OwnerID,
		&e.Description,
		&e.ClientRef,
		&e.Status,
		&e.PostedAt,
		&e.Amount,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindJournalByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_id = $1;`
	entry, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}
	return entry, nil
}

// FindJournalByClientRef retrieves the entry previously posted with the given
// idempotency tag, or ErrNotFound.
func (r *PgxJournalRepository) FindJournalByClientRef(ctx context.Context, ownerID string, clientRef string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE owner_id = $1 AND client_ref = $2;`
	entry, err := scanJournal(r.Pool.QueryRow(ctx, query, ownerID, clientRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by clientRef "+clientRef, err)
	}
	return entry, nil
}

// ListJournalsByOwner retrieves a paginated list of an owner's entries using
// token-based keyset pagination, newest first.
func (r *PgxJournalRepository) ListJournalsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE owner_id = $1
	`
	// Stable ordering: posted_at DESC with created_at as a tie-breaker
	orderByClause := `ORDER BY posted_at DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{ownerID}

	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison keeps the cursor condition concise
		cursorClause := `AND (posted_at, created_at) < ($2, $3)`
		args = append(args, lastPostedAt, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for owner "+ownerID, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for owner "+ownerID, scanErr)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for owner "+ownerID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1] // Last item included in this page
		token := pagination.EncodeToken(last.PostedAt, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return entries, nextTokenVal, nil
}

// FindLinesByJournalID retrieves all lines of one journal entry in the order
// they were supplied when posted.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, line_number, account_id, amount, direction, description, running_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.JournalID,
			&l.LineNumber,
			&l.AccountID,
			&l.Amount,
			&l.Direction,
			&l.Description,
			&l.RunningBalance,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal "+journalID, err)
	}
	return lines, nil
}

// ListLinesByAccountID retrieves a paginated list of lines posted against an
// account, newest first, joined with the parent entry's description and date.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.journal_id, l.line_number, l.account_id, l.amount, l.direction, l.description, l.running_balance,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, j.description, j.posted_at
		FROM journal_lines l
		JOIN journal_entries j ON l.journal_id = j.journal_id
		WHERE l.account_id = $1 AND j.owner_id = $2 AND j.status = 'POSTED'
	`
	orderByClause := `ORDER BY j.posted_at DESC, l.created_at DESC, l.line_number DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, ownerID}

	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (j.posted_at, l.created_at) < ($3, $4)`
		args = append(args, lastPostedAt, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalLine, 0, fetchLimit)
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.JournalID,
			&l.LineNumber,
			&l.AccountID,
			&l.Amount,
			&l.Direction,
			&l.Description,
			&l.RunningBalance,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
			&l.JournalDescription,
			&l.JournalPostedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(last.JournalPostedAt, last.CreatedAt)
		nextTokenVal = &token
		lines = lines[:limit]
	}

	return lines, nextTokenVal, nil
}
