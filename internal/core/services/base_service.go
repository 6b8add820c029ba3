package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wealthpilot/ledger/internal/core/domain"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AuditSvc portssvc.AuditService
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RecordAudit appends an audit record via the audit service. Audit failures are
// logged but never propagated: the triggering operation has already succeeded.
func (s *BaseService) RecordAudit(ctx context.Context, ownerID, action, entityType, entityID string, details map[string]string) {
	if s.AuditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		OwnerID:    ownerID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.AuditSvc.Record(ctx, entry); err != nil {
		s.LogWarn(ctx, "Failed to record audit entry",
			slog.String("action", action),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()))
	}
}
