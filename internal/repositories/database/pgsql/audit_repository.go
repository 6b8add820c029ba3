package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditRepository)(nil)

// SaveAuditLog appends a new audit record. Details are stored as jsonb.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal audit details for "+entry.AuditID, err)
	}
	query := `
		INSERT INTO audit_logs (audit_id, owner_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query,
		entry.AuditID,
		entry.OwnerID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		details,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+entry.AuditID, err)
	}
	return nil
}

// ListAuditLogs retrieves an owner's audit records, newest first.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, ownerID string, limit int, offset int) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, owner_id, action, entity_type, entity_id, details, created_at
		FROM audit_logs
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit records for owner "+ownerID, err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLog, 0, limit)
	for rows.Next() {
		var e domain.AuditLog
		var details []byte
		err := rows.Scan(
			&e.AuditID,
			&e.OwnerID,
			&e.Action,
			&e.EntityType,
			&e.EntityID,
			&details,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, apperrors.NewAppError(500, "failed to unmarshal audit details for "+e.AuditID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}
	return entries, nil
}
