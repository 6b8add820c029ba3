package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wealthpilot/ledger/internal/core/domain"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/dto"
	"github.com/wealthpilot/ledger/internal/middleware"
)

// bankFeedHandler handles HTTP requests for external bank feed records.
type bankFeedHandler struct {
	bankFeedService portssvc.BankFeedService
}

// newBankFeedHandler creates a new bankFeedHandler.
func newBankFeedHandler(bankFeedService portssvc.BankFeedService) *bankFeedHandler {
	return &bankFeedHandler{bankFeedService: bankFeedService}
}

func (h *bankFeedHandler) recordBankTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	var req dto.RecordBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordBankTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.bankFeedService.RecordBankTransaction(c.Request.Context(), ownerID, domain.BankTransaction{
		Amount:      req.Amount,
		Description: req.Description,
		PostedAt:    req.PostedAt,
	})
	if err != nil {
		respondWithError(c, logger, err, "Failed to record bank transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

func (h *bankFeedHandler) listBankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("ownerID")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listBankTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, err := h.bankFeedService.ListBankTransactions(c.Request.Context(), ownerID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bank transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bankTransactions": dto.ToBankTransactionResponses(txns)})
}

// registerBankFeedRoutes registers bank feed routes
func registerBankFeedRoutes(group *gin.RouterGroup, bankFeedService portssvc.BankFeedService) {
	handler := newBankFeedHandler(bankFeedService)

	bank := group.Group("/bank-transactions")
	{
		bank.POST("", handler.recordBankTransaction)
		bank.GET("", handler.listBankTransactions)
	}
}
