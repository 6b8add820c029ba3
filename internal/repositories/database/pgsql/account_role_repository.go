package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
)

type PgxAccountRoleRepository struct {
	BaseRepository
}

// newPgxAccountRoleRepository creates a new repository for role -> account mappings.
func newPgxAccountRoleRepository(pool *pgxpool.Pool) portsrepo.AccountRoleRepository {
	return &PgxAccountRoleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRoleRepository = (*PgxAccountRoleRepository)(nil)

// UpsertRoleMapping creates or replaces the mapping for a role within an owner's chart.
func (r *PgxAccountRoleRepository) UpsertRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error {
	query := `
		INSERT INTO account_roles (owner_id, role, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, role)
		DO UPDATE SET account_id = EXCLUDED.account_id, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		mapping.OwnerID,
		mapping.Role,
		mapping.AccountID,
		mapping.CreatedAt,
		mapping.CreatedBy,
		mapping.LastUpdatedAt,
		mapping.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert role mapping for role "+string(mapping.Role), err)
	}
	return nil
}

// FindRoleMapping retrieves the mapping for a role, or ErrNotFound.
func (r *PgxAccountRoleRepository) FindRoleMapping(ctx context.Context, ownerID string, role domain.AccountRole) (*domain.AccountRoleMapping, error) {
	query := `
		SELECT owner_id, role, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM account_roles
		WHERE owner_id = $1 AND role = $2;
	`
	var m domain.AccountRoleMapping
	err := r.Pool.QueryRow(ctx, query, ownerID, role).Scan(
		&m.OwnerID,
		&m.Role,
		&m.AccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find role mapping for role "+string(role), err)
	}
	return &m, nil
}
