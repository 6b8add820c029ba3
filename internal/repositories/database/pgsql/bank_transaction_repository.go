package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
)

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for bank feed records.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepository {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepository = (*PgxBankTransactionRepository)(nil)

// SaveBankTransaction persists a new bank feed record.
func (r *PgxBankTransactionRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (bank_transaction_id, owner_id, amount, description, posted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.BankTransactionID,
		txn.OwnerID,
		txn.Amount,
		txn.Description,
		txn.PostedAt,
		txn.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank transaction "+txn.BankTransactionID, err)
	}
	return nil
}

// ListBankTransactions retrieves an owner's bank feed records, newest first.
func (r *PgxBankTransactionRepository) ListBankTransactions(ctx context.Context, ownerID string, limit int, offset int) ([]domain.BankTransaction, error) {
	query := `
		SELECT bank_transaction_id, owner_id, amount, description, posted_at, created_at
		FROM bank_transactions
		WHERE owner_id = $1
		ORDER BY posted_at DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions for owner "+ownerID, err)
	}
	defer rows.Close()

	txns := make([]domain.BankTransaction, 0, limit)
	for rows.Next() {
		var t domain.BankTransaction
		err := rows.Scan(
			&t.BankTransactionID,
			&t.OwnerID,
			&t.Amount,
			&t.Description,
			&t.PostedAt,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return txns, nil
}
