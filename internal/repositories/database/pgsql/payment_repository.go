package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
)

const paymentColumns = `payment_id, owner_id, invoice_id, amount, method, paid_at, journal_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

// SavePayment persists a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.OwnerID,
		payment.InvoiceID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
		payment.JournalID,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(500, "failed to insert payment "+payment.PaymentID, err)
	}
	return nil
}

// LinkPaymentJournal stores the id of the auto-posted journal entry on the payment.
func (r *PgxPaymentRepository) LinkPaymentJournal(ctx context.Context, paymentID string, journalID string, userID string, now time.Time) error {
	query := `
		UPDATE payments
		SET journal_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, now, userID, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link payment "+paymentID+" to journal", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListPaymentsByOwner retrieves an owner's payments, newest first.
func (r *PgxPaymentRepository) ListPaymentsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = $1 ORDER BY paid_at DESC, created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for owner "+ownerID, err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, limit)
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.OwnerID,
			&p.InvoiceID,
			&p.Amount,
			&p.Method,
			&p.PaidAt,
			&p.JournalID,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}
