package services

import (
	"context"
	"fmt"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
)

// auditService appends immutable records of mutating actions.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepository) portssvc.AuditService {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditService = (*auditService)(nil)

// Record appends an audit entry. Only required-field presence is validated;
// the caller decides what belongs in Details.
func (s *auditService) Record(ctx context.Context, entry domain.AuditLog) error {
	if entry.AuditID == "" || entry.OwnerID == "" || entry.Action == "" || entry.EntityID == "" {
		return fmt.Errorf("%w: audit entry is missing required fields", apperrors.ErrValidation)
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

// List retrieves an owner's audit records, newest first.
func (s *auditService) List(ctx context.Context, ownerID string, limit int, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.auditRepo.ListAuditLogs(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
