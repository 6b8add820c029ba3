package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/dto"
	"github.com/wealthpilot/ledger/internal/middleware"
)

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService portssvc.AuditService
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(auditService portssvc.AuditService) *auditHandler {
	return &auditHandler{auditService: auditService}
}

func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAuditLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, err := h.auditService.List(c.Request.Context(), ownerID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list audit records")
		return
	}

	c.JSON(http.StatusOK, gin.H{"auditLogs": entries})
}

// registerAuditRoutes registers audit trail routes
func registerAuditRoutes(group *gin.RouterGroup, auditService portssvc.AuditService) {
	handler := newAuditHandler(auditService)

	audit := group.Group("/audit-logs")
	{
		audit.GET("", handler.listAuditLogs)
	}
}
